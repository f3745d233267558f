package model

import (
	"errors"
	"regexp"
	"sort"
	"strings"
)

// ErrInvalidCourseID indicates an identifier that cannot be split into a
// department code and course number.
var ErrInvalidCourseID = errors.New("invalid course identifier")

var courseIDPattern = regexp.MustCompile(`^([A-Z]+)([0-9][A-Z0-9]*)$`)

// Course represents a university course offering.
// CompoundID is the joined form of the department code and course number
// ("COMP" + "1511" = "COMP1511") and is what the public API exposes under
// the course_id key.
type Course struct {
	CompoundID string `json:"course_id"`
	DeptID     string `json:"-"`
	CourseID   string `json:"-"`
	Name       string `json:"name"`
}

// CourseWithClasses is a course together with its class list, the shape the
// course detail and alert confirmation responses use.
type CourseWithClasses struct {
	Course
	Classes []Klass `json:"classes"`
}

// KlassWithCourse pairs a class with its owning course, as produced by a
// class-ID resolution lookup.
type KlassWithCourse struct {
	Klass
	Course Course `json:"-"`
}

// ParseCourseID normalizes a raw course identifier like "comp1511" into its
// department code and course number ("COMP", "1511"). Matching is
// case-insensitive and an already-normalized identifier parses to itself.
func ParseCourseID(raw string) (deptID, courseID string, err error) {
	m := courseIDPattern.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(raw)))
	if m == nil {
		return "", "", ErrInvalidCourseID
	}
	return m[1], m[2], nil
}

// GroupByCourse buckets resolved classes under their owning course. Courses
// are ordered ascending by compound identifier; classes keep their input
// order within each group.
func GroupByCourse(klasses []KlassWithCourse) []CourseWithClasses {
	byCourse := make(map[string]*CourseWithClasses, len(klasses))
	for _, kc := range klasses {
		grp, ok := byCourse[kc.Course.CompoundID]
		if !ok {
			grp = &CourseWithClasses{Course: kc.Course}
			byCourse[kc.Course.CompoundID] = grp
		}
		grp.Classes = append(grp.Classes, kc.Klass)
	}

	ids := make([]string, 0, len(byCourse))
	for id := range byCourse {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]CourseWithClasses, 0, len(ids))
	for _, id := range ids {
		out = append(out, *byCourse[id])
	}
	return out
}
