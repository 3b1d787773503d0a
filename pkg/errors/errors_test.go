package errors

import (
	stdErrors "errors"
	"net/http"
	"testing"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code      Code
		status    int
		publicMsg string
		retryable bool
		detailsOK bool
	}{
		{code: CodeValidation, status: http.StatusBadRequest, publicMsg: "validation failed", detailsOK: true},
		{code: CodeUnauthorized, status: http.StatusUnauthorized, publicMsg: "authentication required"},
		{code: CodeForbidden, status: http.StatusForbidden, publicMsg: "access denied"},
		{code: CodeNotFound, status: http.StatusNotFound, publicMsg: "resource not found"},
		{code: CodeDuplicate, status: http.StatusConflict, publicMsg: "resource already exists", detailsOK: true},
		{code: CodeConflict, status: http.StatusConflict, publicMsg: "conflict detected", detailsOK: true},
		{code: CodeAccountBlocked, status: http.StatusForbidden, publicMsg: "account is blocked"},
		{code: CodeStorageUnavailable, status: http.StatusServiceUnavailable, publicMsg: "storage unavailable", retryable: true},
		{code: CodeInternal, status: http.StatusInternalServerError, publicMsg: "internal server error", retryable: true},
	}

	for _, tt := range tests {
		meta := MetadataFor(tt.code)
		if meta.HTTPStatus != tt.status {
			t.Fatalf("code %s expected status %d got %d", tt.code, tt.status, meta.HTTPStatus)
		}
		if meta.PublicMessage != tt.publicMsg {
			t.Fatalf("code %s expected public message %q got %q", tt.code, tt.publicMsg, meta.PublicMessage)
		}
		if meta.Retryable != tt.retryable {
			t.Fatalf("code %s expected retryable %v got %v", tt.code, tt.retryable, meta.Retryable)
		}
		if meta.DetailsAllowed != tt.detailsOK {
			t.Fatalf("code %s expected details allowed %v got %v", tt.code, tt.detailsOK, meta.DetailsAllowed)
		}
	}
}

func TestMetadataForUnknownCodeDefaultsToInternal(t *testing.T) {
	meta := MetadataFor("SOMETHING_UNKNOWN")
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal status, got %d", meta.HTTPStatus)
	}
}

func TestErrorConstructors(t *testing.T) {
	base := New(CodeValidation, "missing title")
	if base.Code() != CodeValidation {
		t.Fatalf("expected validation code, got %s", base.Code())
	}
	if base.Message() != "missing title" {
		t.Fatalf("unexpected message %q", base.Message())
	}
	if base.Details() != nil {
		t.Fatalf("details should be nil by default")
	}

	withDetails := base.WithDetails(map[string]string{"title": "is required"})
	if withDetails.Details() == nil {
		t.Fatalf("expected details to be attached")
	}

	cause := stdErrors.New("disk gone")
	wrapped := Wrap(CodeStorageUnavailable, cause, "load document")
	if wrapped.Unwrap() != cause {
		t.Fatalf("expected wrapped cause to unwrap")
	}
	if !stdErrors.Is(wrapped, cause) {
		t.Fatalf("errors.Is should reach the cause")
	}
}

func TestWrapNilCauseBehavesLikeNew(t *testing.T) {
	wrapped := Wrap(CodeNotFound, nil, "idea not found")
	if wrapped.Unwrap() != nil {
		t.Fatalf("expected no cause")
	}
	if wrapped.Code() != CodeNotFound {
		t.Fatalf("unexpected code %s", wrapped.Code())
	}
}

func TestAsAndIsCode(t *testing.T) {
	err := New(CodeConflict, "already voted")
	if As(err) == nil {
		t.Fatalf("expected typed error")
	}
	if As(stdErrors.New("plain")) != nil {
		t.Fatalf("plain errors should not convert")
	}
	if !IsCode(err, CodeConflict) {
		t.Fatalf("expected conflict code match")
	}
	if IsCode(err, CodeNotFound) {
		t.Fatalf("unexpected code match")
	}
}

func TestDumpWalksChain(t *testing.T) {
	cause := stdErrors.New("read failed")
	err := Wrap(CodeStorageUnavailable, cause, "load users")

	d := Dump(err)
	if d.Code != CodeStorageUnavailable {
		t.Fatalf("unexpected dump code %s", d.Code)
	}
	if len(d.Chain) != 2 {
		t.Fatalf("expected two chain entries, got %d", len(d.Chain))
	}
}
