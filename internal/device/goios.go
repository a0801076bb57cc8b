package device

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/danielpaulus/go-ios/ios"
	"github.com/danielpaulus/go-ios/ios/afc"

	"github.com/iautotransfer/iautotransfer/internal/model"
)

// Lockdown keys observed on most builds; all reads are best-effort
const (
	keyBatteryCapacity = "BatteryCurrentCapacity"
	keyBatteryCharging = "BatteryIsCharging"
	keyDiskTotal       = "TotalDataCapacity"
	keyDiskAvailable   = "TotalDataAvailable"
)

// MuxDialer dials devices over usbmux. An empty UDID selects the first
// connected device.
type MuxDialer struct {
	udid string
}

// NewMuxDialer creates a dialer for the given device, or for the first
// connected device when udid is empty
func NewMuxDialer(udid string) *MuxDialer {
	return &MuxDialer{udid: udid}
}

// Dial opens a fresh AFC session. Each call returns an independent session
// so transfer workers can pull in parallel.
func (d *MuxDialer) Dial() (Client, error) {
	entry, err := d.selectDevice()
	if err != nil {
		return nil, err
	}

	conn, err := afc.New(entry)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "pair") {
			return nil, ErrNotPaired
		}
		return nil, fmt.Errorf("opening AFC session: %w", err)
	}

	return &goiosClient{entry: entry, conn: conn}, nil
}

func (d *MuxDialer) selectDevice() (ios.DeviceEntry, error) {
	if d.udid != "" {
		entry, err := ios.GetDevice(d.udid)
		if err != nil {
			return ios.DeviceEntry{}, fmt.Errorf("device %s: %w", d.udid, ErrNoDevice)
		}
		return entry, nil
	}

	list, err := ios.ListDevices()
	if err != nil {
		return ios.DeviceEntry{}, fmt.Errorf("listing devices via usbmux: %w", err)
	}
	if len(list.DeviceList) == 0 {
		return ios.DeviceEntry{}, ErrNoDevice
	}
	return list.DeviceList[0], nil
}

// goiosClient adapts a go-ios AFC client to the Client interface
type goiosClient struct {
	entry ios.DeviceEntry
	conn  *afc.Client
}

func (c *goiosClient) Info() (model.DeviceInfo, error) {
	values, err := ios.GetValues(c.entry)
	if err != nil {
		return model.DeviceInfo{}, fmt.Errorf("reading lockdown values: %w", err)
	}

	di := model.DeviceInfo{
		Name:           values.Value.DeviceName,
		ProductType:    values.Value.ProductType,
		ProductVersion: values.Value.ProductVersion,
		SerialNumber:   values.Value.SerialNumber,
		UDID:           values.Value.UniqueDeviceID,
		BatteryPercent: model.BatteryUnknown,
	}

	// AFC filesystem usage is more direct than lockdown DiskUsage; fall
	// back to the lockdown keys when the AFC call is unavailable.
	if info, err := c.conn.DeviceInfo(); err == nil && info.TotalBytes > 0 {
		di.Storage = model.StorageInfo{
			TotalBytes: int64(info.TotalBytes),
			FreeBytes:  int64(info.FreeBytes),
		}
	}

	if plist, err := ios.GetValuesPlist(c.entry); err == nil {
		if di.Storage.TotalBytes == 0 {
			di.Storage = model.StorageInfo{
				TotalBytes: plistInt64(plist, keyDiskTotal),
				FreeBytes:  plistInt64(plist, keyDiskAvailable),
			}
		}
		if cap := plistInt64(plist, keyBatteryCapacity); cap > 0 {
			di.BatteryPercent = int(cap)
		}
		if chg, ok := plist[keyBatteryCharging].(bool); ok {
			di.BatteryCharging = chg
		}
	}

	return di, nil
}

func (c *goiosClient) ListDir(path string) ([]string, error) {
	entries, err := c.conn.List(path)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", path, err)
	}

	names := make([]string, 0, len(entries))
	for _, name := range entries {
		if name == "." || name == ".." {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

func (c *goiosClient) Stat(path string) (FileInfo, error) {
	info, err := c.conn.Stat(path)
	if err != nil {
		return FileInfo{}, fmt.Errorf("stat %s: %w", path, err)
	}
	return FileInfo{
		Size:  info.Size,
		IsDir: info.IsDir(),
	}, nil
}

func (c *goiosClient) PullFile(remotePath, localPath string) error {
	if err := os.MkdirAll(filepath.Dir(localPath), 0o755); err != nil {
		return fmt.Errorf("creating destination directory: %w", err)
	}
	if err := c.conn.PullSingleFile(remotePath, localPath); err != nil {
		return fmt.Errorf("pulling %s: %w", remotePath, err)
	}
	return nil
}

func (c *goiosClient) Close() error {
	return c.conn.Close()
}

// plistInt64 digs a numeric value out of the lockdown plist, tolerating the
// integer widths different iOS builds report
func plistInt64(values map[string]interface{}, key string) int64 {
	switch v := values[key].(type) {
	case int64:
		return v
	case uint64:
		return int64(v)
	case int:
		return int64(v)
	case float64:
		return int64(v)
	default:
		return 0
	}
}
