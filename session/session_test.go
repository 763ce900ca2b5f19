package session

import (
	"testing"
	"time"

	"github.com/simgunz/cinedual/mpv"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeProcess struct {
	role       mpv.Role
	readyAfter int // polls before the socket appears; -1 means never
	alive      bool

	polls int
}

func (f *fakeProcess) Role() mpv.Role { return f.role }

func (f *fakeProcess) IsChannelReady() bool {
	f.polls++
	return f.readyAfter >= 0 && f.polls > f.readyAfter
}

func (f *fakeProcess) IsAlive() bool { return f.alive }

func TestWaitReady(t *testing.T) {
	Convey("waitReady", t, func() {
		Convey("Returns once both sockets appear", func() {
			video := &fakeProcess{role: mpv.RoleVideo, readyAfter: 2, alive: true}
			audio := &fakeProcess{role: mpv.RoleAudio, readyAfter: 1, alive: true}

			So(waitReady(5*time.Second, video, audio), ShouldBeNil)
		})

		Convey("Fails fast when a process dies before its socket appears", func() {
			video := &fakeProcess{role: mpv.RoleVideo, readyAfter: 0, alive: true}
			audio := &fakeProcess{role: mpv.RoleAudio, readyAfter: -1, alive: false}

			err := waitReady(5*time.Second, video, audio)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "audio-only player exited")
		})

		Convey("Gives up after the deadline", func() {
			video := &fakeProcess{role: mpv.RoleVideo, readyAfter: -1, alive: true}

			err := waitReady(150*time.Millisecond, video)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "not ready")
		})
	})
}
