package util

import (
	"regexp"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "file", "files"), ShouldEqual, "1 file")
		So(Quantify(2, "file", "files"), ShouldEqual, "2 files")
	})
}

func TestCapitalize(t *testing.T) {
	Convey("Capitalize", t, func() {
		So(Capitalize("hello"), ShouldEqual, "Hello")
		So(Capitalize(""), ShouldEqual, "")
	})
}

func TestReGroups(t *testing.T) {
	Convey("ReGroups", t, func() {
		re := regexp.MustCompile(`(?P<first>\w+)\s(?P<last>\w+)`)

		Convey("Should extract named groups", func() {
			groups := ReGroups(re, "ada lovelace")
			So(groups["first"], ShouldEqual, "ada")
			So(groups["last"], ShouldEqual, "lovelace")
		})

		Convey("Should return empty map on no match", func() {
			groups := ReGroups(re, "nope")
			So(groups, ShouldBeEmpty)
		})
	})
}
