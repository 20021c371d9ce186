package config

import (
	"testing"

	"github.com/canvasenv-cli/canvasenv/filesystem"
	"github.com/canvasenv-cli/canvasenv/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			err := Setup()
			So(err, ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			_ = Setup()
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
		})

		Convey("Should expose every registered key", func() {
			So(len(EnvExposed), ShouldEqual, len(Default))
			So(len(Default), ShouldEqual, key.DefinedFieldsCount)
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			result := EnvKeyReplacer.Replace("store.profiles")
			So(result, ShouldEqual, "store_profiles")
		})
	})
}

func TestFieldEnv(t *testing.T) {
	Convey("Field.Env", t, func() {
		f := Default[key.CliColored]
		So(f.Env(), ShouldEqual, "CANVASENV_CLI_COLORED")
	})
}
