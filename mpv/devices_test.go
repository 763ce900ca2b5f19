package mpv

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

const deviceHelpOutput = `List of detected audio devices:
  'auto' (Autoselect device)
  'pipewire' (Default (pipewire))
  'alsa/front:CARD=PCH,DEV=0' (HDA Intel PCH, ALC3232 Analog / Front output)
  'alsa/hdmi:CARD=PCH,DEV=3' (HDA Intel PCH, HDMI 0 / HDMI Audio Output)
`

func TestParseDeviceList(t *testing.T) {
	Convey("parseDeviceList", t, func() {
		devices := parseDeviceList(deviceHelpOutput)

		Convey("Extracts every quoted device line", func() {
			So(devices, ShouldHaveLength, 4)
		})

		Convey("Keeps the auto pseudo-device first", func() {
			So(devices[0].ID, ShouldEqual, "auto")
			So(devices[0].Description, ShouldEqual, "Autoselect device")
		})

		Convey("Sorts real devices by id", func() {
			So(devices[1].ID, ShouldEqual, "alsa/front:CARD=PCH,DEV=0")
			So(devices[2].ID, ShouldEqual, "alsa/hdmi:CARD=PCH,DEV=3")
			So(devices[3].ID, ShouldEqual, "pipewire")
		})

		Convey("Handles nested parentheses in descriptions", func() {
			So(devices[3].Description, ShouldEqual, "Default (pipewire)")
		})

		Convey("Ignores non-device lines", func() {
			So(parseDeviceList("no devices here\n"), ShouldBeEmpty)
		})
	})
}

func TestDeviceString(t *testing.T) {
	Convey("Device String", t, func() {
		So(Device{ID: "pipewire", Description: "Default"}.String(), ShouldEqual, "pipewire (Default)")
		So(Device{ID: "auto"}.String(), ShouldEqual, "auto")
	})
}
