package assert

import (
	"fmt"
	"testing"

	"github.com/iov-one/lockbox/errors"
)

type recorder struct {
	failed bool
}

func (r *recorder) Helper()                       {}
func (r *recorder) Fatal(...interface{})          { r.failed = true }
func (r *recorder) Fatalf(string, ...interface{}) { r.failed = true }

func TestAssertions(t *testing.T) {
	cases := map[string]struct {
		fn       func(Tester)
		wantFail bool
	}{
		"nil value":        {fn: func(t Tester) { Nil(t, nil) }},
		"typed nil":        {fn: func(t Tester) { Nil(t, (*int)(nil)) }},
		"not nil":          {fn: func(t Tester) { Nil(t, 1) }, wantFail: true},
		"equal":            {fn: func(t Tester) { Equal(t, []int{1}, []int{1}) }},
		"not equal":        {fn: func(t Tester) { Equal(t, 1, 2) }, wantFail: true},
		"error kind":       {fn: func(t Tester) { IsErr(t, errors.ErrNotFound, errors.ErrNotFound.New("x")) }},
		"wrong error kind": {fn: func(t Tester) { IsErr(t, errors.ErrNotFound, fmt.Errorf("x")) }, wantFail: true},
		"panics":           {fn: func(t Tester) { Panics(t, func() { panic(1) }) }},
		"does not panic":   {fn: func(t Tester) { Panics(t, func() {}) }, wantFail: true},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			var r recorder
			tc.fn(&r)
			if r.failed != tc.wantFail {
				t.Fatalf("want failure %v, got %v", tc.wantFail, r.failed)
			}
		})
	}
}
