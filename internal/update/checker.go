// Package update checks the project's release feed for a newer version.
package update

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/iautotransfer/iautotransfer/internal/httputil"
)

// Version is the running application version
const Version = "1.2.0"

// DefaultEndpoint is the latest-release feed
const DefaultEndpoint = "https://api.github.com/repos/iautotransfer/iautotransfer/releases/latest"

// Release is the subset of the release feed the app cares about
type Release struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// Checker queries the release feed
type Checker struct {
	client   *http.Client
	endpoint string
}

// NewChecker creates a checker against the default endpoint
func NewChecker() *Checker {
	return &Checker{
		client:   &http.Client{Timeout: 15 * time.Second},
		endpoint: DefaultEndpoint,
	}
}

// NewCheckerWithEndpoint creates a checker against a custom endpoint
func NewCheckerWithEndpoint(client *http.Client, endpoint string) *Checker {
	return &Checker{client: client, endpoint: endpoint}
}

// Latest fetches the latest release
func (c *Checker) Latest() (*Release, error) {
	resp, err := httputil.DoWithRetry(c.client, c.endpoint, 2)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("release feed returned %s", resp.Status)
	}

	var release Release
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("decoding release feed: %w", err)
	}
	return &release, nil
}

// Check reports whether a newer release than the running version exists
func (c *Checker) Check() (newer bool, release *Release, err error) {
	release, err = c.Latest()
	if err != nil {
		return false, nil, err
	}
	return IsNewer(Version, release.TagName), release, nil
}

// IsNewer compares two dotted versions, ignoring a leading "v". Malformed
// segments compare as zero.
func IsNewer(current, candidate string) bool {
	cur := splitVersion(current)
	cand := splitVersion(candidate)

	for i := 0; i < len(cur) || i < len(cand); i++ {
		a, b := 0, 0
		if i < len(cur) {
			a = cur[i]
		}
		if i < len(cand) {
			b = cand[i]
		}
		if b != a {
			return b > a
		}
	}
	return false
}

func splitVersion(v string) []int {
	v = strings.TrimPrefix(strings.TrimSpace(v), "v")
	parts := strings.Split(v, ".")
	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err == nil {
			nums[i] = n
		}
	}
	return nums
}
