package setup

import (
	"bytes"
	"testing"

	"github.com/canvasenv-cli/canvasenv/constant"
	"github.com/canvasenv-cli/canvasenv/envstore"
	"github.com/canvasenv-cli/canvasenv/filesystem"
	"github.com/canvasenv-cli/canvasenv/key"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

// memStore records persistent operations without touching any backend.
type memStore struct {
	values map[string]string
}

func newMemStore() *memStore {
	return &memStore{values: map[string]string{}}
}

func (m *memStore) SetPersistent(name, value string) error {
	m.values[name] = value
	return nil
}

func (m *memStore) ClearPersistent(name string) error {
	delete(m.values, name)
	return nil
}

func (m *memStore) Lookup(name string) (string, bool, error) {
	value, ok := m.values[name]
	return value, ok, nil
}

// scriptedFlow returns a flow whose prompts are answered from the given
// sequence and whose environment mutations are captured in env.
func scriptedFlow(store envstore.Store, answers []string) (*Flow, *map[string]string, *bytes.Buffer) {
	env := map[string]string{}
	out := &bytes.Buffer{}

	i := 0
	flow := &Flow{
		Store: store,
		Ask: func(string) (string, error) {
			answer := answers[i]
			i++
			return answer, nil
		},
		Setenv: func(name, value string) error {
			env[name] = value
			return nil
		},
		Unsetenv: func(name string) error {
			delete(env, name)
			return nil
		},
		Out: out,
	}

	return flow, &env, out
}

// interactive is the Set invocation with no explicit flag values.
func interactive(flow *Flow) error {
	return flow.Set(mo.None[string](), mo.None[string]())
}

func TestSetFlow(t *testing.T) {
	Convey("Set flow", t, func() {
		Convey("rejects empty key input and accepts the retry", func() {
			store := newMemStore()
			flow, env, out := scriptedFlow(store, []string{
				"", "abc123",
				"https://school.edu/courses/456",
			})

			So(interactive(flow), ShouldBeNil)
			So(store.values[constant.EnvAPIKey], ShouldEqual, "abc123")
			So((*env)[constant.EnvAPIKey], ShouldEqual, "abc123")
			So(out.String(), ShouldContainSubstring, "must not be empty")
		})

		Convey("accepts a well-formed course URL on first try", func() {
			store := newMemStore()
			flow, _, _ := scriptedFlow(store, []string{
				"abc123",
				"https://school.edu/courses/456",
			})

			So(interactive(flow), ShouldBeNil)
			So(store.values[constant.EnvCourseURL], ShouldEqual, "https://school.edu/courses/456")
		})

		Convey("re-prompts on a malformed course URL with a format hint", func() {
			store := newMemStore()
			flow, _, out := scriptedFlow(store, []string{
				"abc123",
				"not-a-url", "https://school.edu/courses/456",
			})

			So(interactive(flow), ShouldBeNil)
			So(out.String(), ShouldContainSubstring, "does not match https://<host>/courses/<id>")
			So(store.values[constant.EnvCourseURL], ShouldEqual, "https://school.edu/courses/456")
		})

		Convey("surrounding whitespace is trimmed before validation", func() {
			store := newMemStore()
			flow, _, _ := scriptedFlow(store, []string{
				"  abc123  ",
				" https://school.edu/courses/456 ",
			})

			So(interactive(flow), ShouldBeNil)
			So(store.values[constant.EnvAPIKey], ShouldEqual, "abc123")
			So(store.values[constant.EnvCourseURL], ShouldEqual, "https://school.edu/courses/456")
		})

		Convey("explicit flag values skip the prompts", func() {
			store := newMemStore()
			flow, _, _ := scriptedFlow(store, nil)

			So(flow.Set(mo.Some("abc123"), mo.Some("https://school.edu/courses/456")), ShouldBeNil)
			So(store.values[constant.EnvAPIKey], ShouldEqual, "abc123")
		})

		Convey("an explicitly empty api key fails instead of prompting", func() {
			store := newMemStore()
			flow, _, _ := scriptedFlow(store, nil)

			prompted := false
			flow.Ask = func(string) (string, error) {
				prompted = true
				return "from-prompt", nil
			}

			err := flow.Set(mo.Some(""), mo.Some("https://school.edu/courses/456"))
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "api key")
			So(prompted, ShouldBeFalse)
			So(store.values, ShouldBeEmpty)
		})

		Convey("an explicitly empty course URL fails instead of prompting", func() {
			store := newMemStore()
			flow, _, _ := scriptedFlow(store, nil)

			prompted := false
			flow.Ask = func(string) (string, error) {
				prompted = true
				return "https://school.edu/courses/456", nil
			}

			err := flow.Set(mo.Some("abc123"), mo.Some(""))
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "course url")
			So(prompted, ShouldBeFalse)
			So(store.values, ShouldBeEmpty)
		})

		Convey("an invalid explicit course URL fails instead of prompting", func() {
			store := newMemStore()
			flow, _, _ := scriptedFlow(store, nil)

			So(flow.Set(mo.Some("abc123"), mo.Some("not-a-url")), ShouldNotBeNil)
			So(store.values, ShouldBeEmpty)
		})

		Convey("the restart note is always printed", func() {
			store := newMemStore()
			flow, _, out := scriptedFlow(store, []string{
				"abc123",
				"https://school.edu/courses/456",
			})

			So(interactive(flow), ShouldBeNil)
			So(out.String(), ShouldContainSubstring, "new session")
		})
	})
}

func TestClearFlow(t *testing.T) {
	Convey("Clear flow", t, func() {
		Convey("removes persisted values and the process environment", func() {
			store := newMemStore()
			flow, env, _ := scriptedFlow(store, []string{
				"abc123",
				"https://school.edu/courses/456",
			})

			So(interactive(flow), ShouldBeNil)
			So(flow.Clear(), ShouldBeNil)
			So(store.values, ShouldBeEmpty)
			So(*env, ShouldBeEmpty)
		})

		Convey("succeeds when nothing was ever set", func() {
			store := newMemStore()
			flow, _, out := scriptedFlow(store, nil)

			So(flow.Clear(), ShouldBeNil)
			So(out.String(), ShouldContainSubstring, "Cleared 2 credential variables")
		})
	})
}

func TestFlowAgainstProfileStore(t *testing.T) {
	Convey("Set then Clear against the profile store leaves no trace", t, func() {
		filesystem.SetMemMapFs()
		viper.Set(key.StoreProfiles, []string{"/home/u/.bashrc"})
		store := envstore.NewProfileStore()

		flow, _, _ := scriptedFlow(store, []string{
			"abc123",
			"https://school.edu/courses/456",
		})

		So(interactive(flow), ShouldBeNil)
		data, err := filesystem.API().ReadFile("/home/u/.bashrc")
		So(err, ShouldBeNil)
		So(string(data), ShouldContainSubstring, "export CANVAS_API_KEY=abc123")

		So(flow.Clear(), ShouldBeNil)
		exists, _ := filesystem.API().Exists("/home/u/.bashrc")
		So(exists, ShouldBeFalse)
	})
}
