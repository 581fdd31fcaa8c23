package results

import (
	"errors"
	"testing"
)

func TestOperationResult(t *testing.T) {
	ok := SuccessResult[int, error](7)
	if !ok.IsSuccess() || ok.IsFailure() || *ok.Success != 7 {
		t.Fatalf("unexpected success result: %+v", ok)
	}

	errBoom := errors.New("boom")
	failed := FailureResult[int, error](errBoom)
	if failed.IsSuccess() || !failed.IsFailure() || !errors.Is(*failed.Failure, errBoom) {
		t.Fatalf("unexpected failure result: %+v", failed)
	}

	var empty OperationResult[int, error]
	if empty.IsSuccess() || empty.IsFailure() {
		t.Fatal("zero result must be neither success nor failure")
	}
}
