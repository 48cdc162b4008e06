package health

import (
	"context"
	"errors"
	"testing"
)

type fakePinger struct{ err error }

func (f fakePinger) Ping(ctx context.Context) error { return f.err }

func TestCheck_Healthy(t *testing.T) {
	report := New(fakePinger{}).Check(context.Background())
	if report.Status != Healthy {
		t.Errorf("status = %s, want ok", report.Status)
	}
	if report.Checks["catalog"] != CheckOK {
		t.Errorf("catalog = %s, want ok", report.Checks["catalog"])
	}
}

func TestCheck_Degraded(t *testing.T) {
	report := New(fakePinger{err: errors.New("connection refused")}).Check(context.Background())
	if report.Status != Degraded {
		t.Errorf("status = %s, want degraded", report.Status)
	}
	if report.Checks["catalog"] != CheckError {
		t.Errorf("catalog = %s, want error", report.Checks["catalog"])
	}
}
