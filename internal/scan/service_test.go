package scan

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iautotransfer/iautotransfer/internal/device"
	"github.com/iautotransfer/iautotransfer/internal/media"
	"github.com/iautotransfer/iautotransfer/internal/model"
)

// fakeClient serves a canned directory tree
type fakeClient struct {
	info   model.DeviceInfo
	dirs   map[string][]string
	sizes  map[string]int64
	closed bool
}

func (c *fakeClient) Info() (model.DeviceInfo, error) { return c.info, nil }

func (c *fakeClient) ListDir(path string) ([]string, error) {
	names, ok := c.dirs[path]
	if !ok {
		return nil, assert.AnError
	}
	return names, nil
}

func (c *fakeClient) Stat(path string) (device.FileInfo, error) {
	if _, ok := c.dirs[path]; ok {
		return device.FileInfo{IsDir: true}, nil
	}
	size, ok := c.sizes[path]
	if !ok {
		return device.FileInfo{}, assert.AnError
	}
	return device.FileInfo{Size: size}, nil
}

func (c *fakeClient) PullFile(remotePath, localPath string) error { return nil }

func (c *fakeClient) Close() error {
	c.closed = true
	return nil
}

type fakeDialer struct {
	client *fakeClient
	err    error
}

func (d *fakeDialer) Dial() (device.Client, error) {
	if d.err != nil {
		return nil, d.err
	}
	return d.client, nil
}

func newTestClient() *fakeClient {
	return &fakeClient{
		info: model.DeviceInfo{
			Name:           "Test iPhone",
			ProductVersion: "17.4",
			Storage:        model.StorageInfo{TotalBytes: 1000, FreeBytes: 400},
		},
		dirs: map[string][]string{
			"/DCIM":          {"100APPLE", "101APPLE"},
			"/DCIM/100APPLE": {"IMG_20240110.JPG", "IMG_20240215.HEIC", "VID_20240110.MOV", "notes.txt"},
			"/DCIM/101APPLE": {"IMG_20250301.JPG", "broken.jpg"},
		},
		sizes: map[string]int64{
			"/DCIM/100APPLE/IMG_20240110.JPG":  100,
			"/DCIM/100APPLE/IMG_20240215.HEIC": 200,
			"/DCIM/100APPLE/VID_20240110.MOV":  1000,
			"/DCIM/100APPLE/notes.txt":         5,
			"/DCIM/101APPLE/IMG_20250301.JPG":  300,
			// broken.jpg has no stat entry and must be skipped
		},
	}
}

func TestScan_All(t *testing.T) {
	client := newTestClient()
	scanner := NewScanner(&fakeDialer{client: client})

	var logs []string
	scanner.SetLogCallback(func(msg string) { logs = append(logs, msg) })

	result, err := scanner.Scan(context.Background(), media.NewFilter("all", 0, 0))
	require.NoError(t, err)

	assert.Equal(t, "Test iPhone", result.Device.Name)
	assert.Equal(t, 4, result.Summary.Total)
	assert.Equal(t, 3, result.Summary.Photos)
	assert.Equal(t, 1, result.Summary.Videos)
	assert.Equal(t, int64(1600), result.Summary.TotalBytes)
	assert.True(t, client.closed, "scan must close its session")
	assert.NotEmpty(t, logs)
}

func TestScan_FilterByKindAndYear(t *testing.T) {
	scanner := NewScanner(&fakeDialer{client: newTestClient()})

	result, err := scanner.Scan(context.Background(), media.NewFilter("photos", 2024, 0))
	require.NoError(t, err)

	require.Len(t, result.Files, 2)
	for _, f := range result.Files {
		assert.Equal(t, model.MediaKindPhoto, f.Kind)
		assert.Equal(t, 2024, f.Year)
	}
}

func TestScan_DialError(t *testing.T) {
	scanner := NewScanner(&fakeDialer{err: device.ErrNoDevice})

	_, err := scanner.Scan(context.Background(), media.NewFilter("all", 0, 0))
	assert.ErrorIs(t, err, device.ErrNoDevice)
}

func TestScan_Cancelled(t *testing.T) {
	scanner := NewScanner(&fakeDialer{client: newTestClient()})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := scanner.Scan(ctx, media.NewFilter("all", 0, 0))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScan_MissingDCIM(t *testing.T) {
	client := newTestClient()
	client.dirs = map[string][]string{}
	scanner := NewScanner(&fakeDialer{client: client})

	_, err := scanner.Scan(context.Background(), media.NewFilter("all", 0, 0))
	assert.Error(t, err)
}
