package mpv

import (
	"bufio"
	"net"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

// fakePlayer answers IPC exchanges on a real unix socket the way mpv does:
// one newline-delimited JSON request per connection, one JSON reply.
type fakePlayer struct {
	ln       net.Listener
	requests chan string
}

func newFakePlayer(t *testing.T, socket, reply string) *fakePlayer {
	t.Helper()

	ln, err := net.Listen("unix", socket)
	if err != nil {
		t.Fatalf("listen on %s: %v", socket, err)
	}

	f := &fakePlayer{ln: ln, requests: make(chan string, 16)}
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			line, err := bufio.NewReader(conn).ReadString('\n')
			if err == nil {
				f.requests <- line
				_, _ = conn.Write([]byte(reply + "\n"))
			}
			conn.Close()
		}
	}()

	t.Cleanup(func() { ln.Close() })
	return f
}

func TestChannelSend(t *testing.T) {
	Convey("Given a player answering on a unix socket", t, func() {
		socket := filepath.Join(t.TempDir(), "player.sock")
		player := newFakePlayer(t, socket, `{"data":null,"error":"success"}`)
		ch := NewChannel(socket)

		Convey("Send delivers the command as newline-delimited JSON", func() {
			_, err := ch.Send("set_property", "pause", true)
			So(err, ShouldBeNil)
			So(<-player.requests, ShouldEqual, `{"command":["set_property","pause",true]}`+"\n")
		})

		Convey("Pause and Resume set the paused property", func() {
			So(ch.Pause(), ShouldBeNil)
			So(<-player.requests, ShouldEqual, `{"command":["set_property","pause",true]}`+"\n")

			So(ch.Resume(), ShouldBeNil)
			So(<-player.requests, ShouldEqual, `{"command":["set_property","pause",false]}`+"\n")
		})

		Convey("Seek issues an absolute seek", func() {
			So(ch.Seek(120), ShouldBeNil)
			So(<-player.requests, ShouldEqual, `{"command":["seek",120,"absolute"]}`+"\n")
		})

		Convey("Quit requests process termination", func() {
			So(ch.Quit(), ShouldBeNil)
			So(<-player.requests, ShouldEqual, `{"command":["quit"]}`+"\n")
		})

		Convey("Responds reports a live listener", func() {
			So(ch.Responds(), ShouldBeTrue)
		})
	})

	Convey("Given a player that reports an error", t, func() {
		socket := filepath.Join(t.TempDir(), "player.sock")
		newFakePlayer(t, socket, `{"error":"property not found"}`)
		ch := NewChannel(socket)

		Convey("Send surfaces the mpv error", func() {
			_, err := ch.Send("set_property", "bogus", 1)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "property not found")
		})
	})

	Convey("Given no listener on the socket", t, func() {
		ch := NewChannel(filepath.Join(t.TempDir(), "absent.sock"))

		Convey("Send fails without retrying", func() {
			_, err := ch.Send("get_property", "pid")
			So(err, ShouldNotBeNil)
		})

		Convey("Responds reports no session", func() {
			So(ch.Responds(), ShouldBeFalse)
		})
	})
}
