package valueobject

import "testing"

func TestAPIStatus_OK(t *testing.T) {
	if !(APIStatus{Status: 200, StatusDescription: "Request successful"}).OK() {
		t.Error("expected 200 to be OK")
	}
	if (APIStatus{Status: 400, StatusDescription: "Bad request"}).OK() {
		t.Error("expected 400 not to be OK")
	}
	if got := (APIStatus{Status: 404, StatusDescription: "Not found"}).String(); got != "404 - Not found" {
		t.Errorf("String() = %q", got)
	}
}
