package delay

import (
	"errors"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/simgunz/cinedual/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

// recorder captures the order of transport sends and everything slept between them.
type recorder struct {
	events []string
	sleeps []time.Duration
}

func (r *recorder) add(event string) {
	r.events = append(r.events, event)
}

type fakeTransport struct {
	name string
	rec  *recorder
	fail bool
}

func (f *fakeTransport) Pause() error {
	f.rec.add(f.name + ":pause")
	if f.fail {
		return errors.New("transport down")
	}
	return nil
}

func (f *fakeTransport) Resume() error {
	f.rec.add(f.name + ":resume")
	if f.fail {
		return errors.New("transport down")
	}
	return nil
}

func newTestEngine(path string) (*Engine, *recorder) {
	rec := &recorder{}
	e := New(path, 0.1)
	e.Bind(&fakeTransport{name: "video", rec: rec}, &fakeTransport{name: "audio", rec: rec})
	e.sleep = func(d time.Duration) {
		rec.add("sleep")
		rec.sleeps = append(rec.sleeps, d)
	}
	return e, rec
}

func TestClassify(t *testing.T) {
	Convey("Classify", t, func() {
		Convey("Values inside the epsilon band are zero", func() {
			So(Classify(0), ShouldEqual, Zero)
			So(Classify(0.0005), ShouldEqual, Zero)
			So(Classify(-0.0005), ShouldEqual, Zero)
		})

		Convey("Values above the band are positive", func() {
			So(Classify(0.002), ShouldEqual, Positive)
			So(Classify(1.5), ShouldEqual, Positive)
		})

		Convey("Values below the band are negative", func() {
			So(Classify(-0.002), ShouldEqual, Negative)
			So(Classify(-0.35), ShouldEqual, Negative)
		})
	})
}

func TestFormat(t *testing.T) {
	Convey("Format", t, func() {
		So(Format(0.2), ShouldEqual, "0.200")
		So(Format(-0.5), ShouldEqual, "-0.500")
		So(Format(1.23456), ShouldEqual, "1.235")
	})
}

func TestPersistence(t *testing.T) {
	Convey("Given a fresh delay file path", t, func() {
		e, _ := newTestEngine("/persist/fresh/delay")

		Convey("Load adopts and persists the default", func() {
			So(e.Load(), ShouldBeNil)
			So(e.Current(), ShouldEqual, DefaultCompensation)

			data := lo.Must(filesystem.API().ReadFile("/persist/fresh/delay"))
			So(string(data), ShouldEqual, "0.200\n")
		})
	})

	Convey("Given a persisted value", t, func() {
		So(filesystem.API().WriteFile("/persist/delay", []byte("-0.350\n"), 0o644), ShouldBeNil)
		e, _ := newTestEngine("/persist/delay")

		Convey("Load reads it back", func() {
			So(e.Load(), ShouldBeNil)
			So(e.Current(), ShouldEqual, -0.35)
		})
	})

	Convey("Given a corrupt delay file", t, func() {
		So(filesystem.API().WriteFile("/persist/corrupt/delay", []byte("not a number\n"), 0o644), ShouldBeNil)
		e, _ := newTestEngine("/persist/corrupt/delay")

		Convey("Load fails with a corrective hint", func() {
			err := e.Load()
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "delete it to reset")
		})
	})
}

func TestTimedStart(t *testing.T) {
	Convey("TimedStart", t, func() {
		e, rec := newTestEngine("/timed/delay")

		Convey("Zero delay resumes video then audio with no sleep", func() {
			So(e.SetTo(0), ShouldBeNil)
			rec.events = nil

			e.TimedStart()
			So(rec.events, ShouldResemble, []string{"video:resume", "audio:resume"})
			So(rec.sleeps, ShouldBeEmpty)
		})

		Convey("Positive delay resumes video first and sleeps the full delay", func() {
			So(e.SetTo(0.3), ShouldBeNil)
			rec.events = nil
			rec.sleeps = nil

			e.TimedStart()
			So(rec.events, ShouldResemble, []string{"video:resume", "sleep", "audio:resume"})
			So(rec.sleeps[0].Seconds(), ShouldAlmostEqual, 0.3, 1e-9)
		})

		Convey("Negative delay resumes audio first and sleeps the magnitude", func() {
			So(e.SetTo(-0.25), ShouldBeNil)
			rec.events = nil
			rec.sleeps = nil

			e.TimedStart()
			So(rec.events, ShouldResemble, []string{"audio:resume", "sleep", "video:resume"})
			So(rec.sleeps[0].Seconds(), ShouldAlmostEqual, 0.25, 1e-9)
		})
	})
}

func TestResync(t *testing.T) {
	Convey("Resync pauses both players before the timed resume", t, func() {
		e, rec := newTestEngine("/resync/delay")
		So(e.SetTo(0.3), ShouldBeNil)
		rec.events = nil
		rec.sleeps = nil

		e.Resync()
		So(rec.events, ShouldResemble, []string{
			"video:pause", "audio:pause",
			"video:resume", "sleep", "audio:resume",
		})
	})
}

func TestAdjust(t *testing.T) {
	Convey("Given an engine holding the default", t, func() {
		So(filesystem.API().WriteFile("/adjust/delay", []byte("0.200\n"), 0o644), ShouldBeNil)
		e, rec := newTestEngine("/adjust/delay")
		So(e.Load(), ShouldBeNil)

		Convey("Increase persists one step up and resynchronizes", func() {
			value, err := e.Increase()
			So(err, ShouldBeNil)
			So(value, ShouldAlmostEqual, 0.3, 1e-9)

			data := lo.Must(filesystem.API().ReadFile("/adjust/delay"))
			So(string(data), ShouldEqual, "0.300\n")
			So(rec.events, ShouldContain, "video:pause")
			So(rec.events, ShouldContain, "audio:resume")
		})

		Convey("Increase then Decrease is a round trip", func() {
			original := e.Current()
			_, err := e.Increase()
			So(err, ShouldBeNil)
			value, err := e.Decrease()
			So(err, ShouldBeNil)
			So(value, ShouldAlmostEqual, original, 1e-9)
		})

		Convey("Repeated decreases cross zero exactly", func() {
			for i := 0; i < 4; i++ {
				_, err := e.Decrease()
				So(err, ShouldBeNil)
			}
			So(e.Current(), ShouldAlmostEqual, -0.2, 1e-9)

			data := lo.Must(filesystem.API().ReadFile("/adjust/delay"))
			So(string(data), ShouldEqual, "-0.200\n")
		})
	})

	Convey("Transport failures do not abort an adjustment", t, func() {
		rec := &recorder{}
		e := New("/config/delay-faulty", 0.1)
		e.Bind(
			&fakeTransport{name: "video", rec: rec, fail: true},
			&fakeTransport{name: "audio", rec: rec, fail: true},
		)
		e.sleep = func(time.Duration) {}
		So(e.Load(), ShouldBeNil)

		_, err := e.Increase()
		So(err, ShouldBeNil)

		data := lo.Must(filesystem.API().ReadFile("/config/delay-faulty"))
		So(string(data), ShouldEqual, "0.300\n")
	})
}
