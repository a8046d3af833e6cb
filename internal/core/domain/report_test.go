package domain

import "testing"

func TestCanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to ReportStatus
		want     bool
	}{
		{ReportPending, ReportInProgress, true},
		{ReportPending, ReportRejected, true},
		{ReportPending, ReportResolved, false},
		{ReportInProgress, ReportResolved, true},
		{ReportInProgress, ReportRejected, true},
		{ReportInProgress, ReportPending, false},
		{ReportResolved, ReportInProgress, false},
		{ReportRejected, ReportPending, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("%s -> %s: got %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestOwnedBy(t *testing.T) {
	report := &Report{ID: "rep_1", UserID: "acc_1"}

	if !report.OwnedBy(&Principal{ID: "acc_1"}) {
		t.Error("expected owner to match")
	}
	if report.OwnedBy(&Principal{ID: "acc_2"}) {
		t.Error("expected non-owner to fail")
	}
	if report.OwnedBy(nil) {
		t.Error("expected nil principal to fail")
	}
}
