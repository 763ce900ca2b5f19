package mpv

import (
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"github.com/simgunz/cinedual/key"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

// Device is one audio output sink as reported by the player.
type Device struct {
	ID          string
	Description string
}

// String renders the device for selection menus.
func (d Device) String() string {
	if d.Description == "" {
		return d.ID
	}
	return fmt.Sprintf("%s (%s)", d.ID, d.Description)
}

// deviceLineRe matches mpv's `--audio-device=help` output lines, e.g.
//
//	'alsa/front:CARD=PCH,DEV=0' (HDA Intel PCH, ALC3232 Analog)
var deviceLineRe = regexp.MustCompile(`'([^']+)'\s*\((.*)\)`)

// ListDevices enumerates the audio output devices known to the player binary.
func ListDevices() ([]Device, error) {
	out, err := exec.Command(viper.GetString(key.PlayerBinary), "--no-config", "--audio-device=help").Output()
	if err != nil {
		return nil, fmt.Errorf("enumerate audio devices: %w", err)
	}

	devices := parseDeviceList(string(out))
	if len(devices) == 0 {
		return nil, fmt.Errorf("no audio devices reported by %s", viper.GetString(key.PlayerBinary))
	}
	return devices, nil
}

// parseDeviceList extracts devices from the player's device listing output.
// The "auto" pseudo-device is kept first; real devices follow sorted by id.
func parseDeviceList(out string) []Device {
	var auto []Device
	var devices []Device

	for _, line := range strings.Split(out, "\n") {
		match := deviceLineRe.FindStringSubmatch(strings.TrimSpace(line))
		if match == nil {
			continue
		}

		d := Device{ID: match[1], Description: strings.TrimSpace(match[2])}
		if d.ID == "auto" {
			auto = append(auto, d)
			continue
		}
		devices = append(devices, d)
	}

	slices.SortFunc(devices, func(a, b Device) int {
		return strings.Compare(a.ID, b.ID)
	})

	return append(auto, devices...)
}
