package where

import (
	"path/filepath"
	"testing"

	"github.com/canvasenv-cli/canvasenv/filesystem"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Use in-memory filesystem for tests to avoid creating real directories
	filesystem.SetMemMapFs()
}

func TestPaths(t *testing.T) {
	Convey("Path functions", t, func() {
		Convey("Config()", func() {
			path := Config()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("Cache()", func() {
			path := Cache()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("Logs()", func() {
			path := Logs()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("VersionCache() lives under Cache()", func() {
			So(filepath.Dir(VersionCache()), ShouldEqual, Cache())
		})

		Convey("Temp()", func() {
			path := Temp()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})
	})
}

func TestConfigOverride(t *testing.T) {
	Convey("CANVASENV_CONFIG_PATH overrides the config directory", t, func() {
		t.Setenv(EnvConfigPath, "/custom/config")
		So(Config(), ShouldEqual, "/custom/config")
		So(lo.Must(filesystem.API().IsDir("/custom/config")), ShouldBeTrue)
	})
}
