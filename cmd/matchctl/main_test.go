package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, logs bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&logs)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestMatchctl(t *testing.T) {
	Convey("Given a fresh database", t, func() {
		db := filepath.Join(t.TempDir(), "cli.db")
		common := []string{"--db", db, "--log-level", "error"}

		_, err := run(t, append([]string{"seed", "--matches", "2", "--events", "200"}, common...)...)
		So(err, ShouldBeNil)

		out, err := run(t, append([]string{"list", "--json"}, common...)...)
		So(err, ShouldBeNil)
		var list []struct {
			MatchID string
			Events  int
		}
		So(json.Unmarshal([]byte(out), &list), ShouldBeNil)
		So(list, ShouldHaveLength, 2)
		So(list[0].Events, ShouldEqual, 200)

		Convey("When reporting a match as JSON", func() {
			out, err := run(t, append([]string{"report", list[0].MatchID, "--json"}, common...)...)

			So(err, ShouldBeNil)
			var body map[string]any
			So(json.Unmarshal([]byte(out), &body), ShouldBeNil)
			So(body, ShouldContainKey, "laneThreat")
		})

		Convey("When reporting a match as tables", func() {
			out, err := run(t, append([]string{"report", list[1].MatchID, "--scope", "second_half", "--shots", "--players"}, common...)...)

			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, "Scope: second_half")
		})

		Convey("When comparing both matches", func() {
			out, err := run(t, append([]string{"compare", list[0].MatchID, list[1].MatchID, "--json"}, common...)...)

			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, `"source": "stored"`)
			So(out, ShouldContainSubstring, `"source": "recomputed"`)
		})

		Convey("When reporting work time", func() {
			out, err := run(t, append([]string{"worktime"}, common...)...)

			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, "Break threshold")
		})

		Convey("When the scope is unknown", func() {
			_, err := run(t, append([]string{"report", list[0].MatchID, "--scope", "extra_time"}, common...)...)

			So(err, ShouldNotBeNil)
		})
	})
}
