package errors

import (
	stderrors "errors"
	"testing"
)

func TestABCIInfo(t *testing.T) {
	cases := map[string]struct {
		err      error
		debug    bool
		wantCode uint32
		wantLog  string
	}{
		"no error": {
			err:      nil,
			wantCode: SuccessABCICode,
			wantLog:  "",
		},
		"registered error": {
			err:      ErrNotFound.New("lock"),
			wantCode: 3,
			wantLog:  "lock: not found",
		},
		"stdlib error is redacted": {
			err:      stderrors.New("disk on fire"),
			wantCode: 1,
			wantLog:  "internal error",
		},
		"panic is redacted": {
			err:      Wrap(ErrPanic, "index out of range"),
			wantCode: 1,
			wantLog:  "internal error",
		},
		"aggregated error uses first code": {
			err:      Append(ErrEmpty.New("a"), ErrInput.New("b")),
			wantCode: 9,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			code, log := ABCIInfo(tc.err, tc.debug)
			if code != tc.wantCode {
				t.Errorf("want %d code, got %d", tc.wantCode, code)
			}
			if tc.wantLog != "" && log != tc.wantLog {
				t.Errorf("want %q log, got %q", tc.wantLog, log)
			}
		})
	}
}

func TestRedact(t *testing.T) {
	if err := Redact(ErrDuplicate.New("lock"), false); !ErrDuplicate.Is(err) {
		t.Fatalf("registered error must be kept, got %v", err)
	}
	if err := Redact(stderrors.New("secret"), false); err.Error() != internalABCILog {
		t.Fatalf("internal error must be redacted, got %v", err)
	}
	if err := Redact(stderrors.New("secret"), true); err.Error() != "secret" {
		t.Fatalf("debug mode must keep the error, got %v", err)
	}
}
