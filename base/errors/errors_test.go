// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLog(t *testing.T) {
	assert.NoError(t, Log(nil))
	err := New("test error")
	assert.Equal(t, err, Log(err))
}

func TestLog1(t *testing.T) {
	assert.Equal(t, 42, Log1(42, nil))
	assert.Equal(t, 1, Log1(1, New("test error")))
}

func TestMust(t *testing.T) {
	Must(nil)
	assert.Panics(t, func() {
		Must(New("test error"))
	})
	assert.Equal(t, "v", Must1("v", nil))
	assert.Panics(t, func() {
		Must1(0, New("test error"))
	})
}

func TestIgnore(t *testing.T) {
	assert.Equal(t, 5, Ignore1(5, New("ignored")))
}

func TestJoin(t *testing.T) {
	assert.NoError(t, Join(nil, nil))
	e1 := New("one")
	e2 := New("two")
	j := Join(e1, nil, e2)
	assert.True(t, Is(j, e1))
	assert.True(t, Is(j, e2))
}

func TestCallerInfo(t *testing.T) {
	ci := func() string {
		return CallerInfo()
	}()
	assert.Contains(t, ci, "errors_test.go")
}
