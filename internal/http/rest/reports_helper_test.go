package rest

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/opencivic/civic-api/internal/deps"
	"github.com/opencivic/civic-api/internal/model"
	"github.com/opencivic/civic-api/util/values"
	"github.com/opencivic/civic-api/util/websockets"
)

func TestAnnotateReport(t *testing.T) {
	owner := uuid.New()
	viewer := uuid.New()
	support := values.VoteSupport
	oppose := values.VoteOppose

	report := model.CivicReport{
		ID:              uuid.New(),
		Title:           "Pothole",
		Type:            "ILLEGAL_DUMPING",
		Latitude:        28.6,
		Longitude:       77.2,
		SupportCount:    1,
		OppositionCount: 0,
		Status:          values.StatusPending,
		CreatedByID:     owner,
	}

	testCases := []struct {
		name         string
		viewerID     uuid.UUID
		userVote     *string
		wantOwn      bool
		wantHasVoted bool
		wantCanVote  bool
	}{
		{"Owner cannot vote", owner, nil, true, false, false},
		{"Other user no vote yet", viewer, nil, false, false, true},
		{"Other user already supported", viewer, &support, false, true, false},
		{"Other user already opposed", viewer, &oppose, false, true, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := AnnotateReport(report, tc.userVote, tc.viewerID)

			if got.IsOwnReport != tc.wantOwn {
				t.Errorf("IsOwnReport = %v; want %v", got.IsOwnReport, tc.wantOwn)
			}
			if got.HasVoted != tc.wantHasVoted {
				t.Errorf("HasVoted = %v; want %v", got.HasVoted, tc.wantHasVoted)
			}
			if got.CanVote != tc.wantCanVote {
				t.Errorf("CanVote = %v; want %v", got.CanVote, tc.wantCanVote)
			}
			if got.UserVote != tc.userVote {
				t.Errorf("UserVote = %v; want %v", got.UserVote, tc.userVote)
			}
			if got.ID != report.ID || got.SupportCount != report.SupportCount {
				t.Error("annotation must not alter the underlying report")
			}
		})
	}
}

func TestAnnotateAllSplitsByViewer(t *testing.T) {
	alice := uuid.New()
	bob := uuid.New()

	rows := []reportWithVote{
		{Report: model.CivicReport{ID: uuid.New(), CreatedByID: alice}},
		{Report: model.CivicReport{ID: uuid.New(), CreatedByID: bob}},
	}

	annotated := annotateAll(rows, alice)
	if len(annotated) != 2 {
		t.Fatalf("annotated %d reports; want 2", len(annotated))
	}
	if !annotated[0].IsOwnReport || annotated[0].CanVote {
		t.Error("alice's own report should be isOwnReport=true, canVote=false")
	}
	if annotated[1].IsOwnReport || !annotated[1].CanVote {
		t.Error("bob's report should be votable for alice")
	}
}

func TestAnnotateAllEmpty(t *testing.T) {
	annotated := annotateAll(nil, uuid.New())
	if annotated == nil || len(annotated) != 0 {
		t.Errorf("annotateAll(nil) = %v; want empty slice", annotated)
	}
}

// stubReportStore lets the helpers run against scripted repo outcomes.
type stubReportStore struct {
	castVote model.ReportVote
	castErr  error

	report   reportWithVote
	getErr   error
	getCalls int

	deleteErr error
	statusErr error
}

func (s *stubReportStore) CastVoteRepo(_ context.Context, _ uuid.UUID, _ uuid.UUID, _ string) (model.ReportVote, error) {
	return s.castVote, s.castErr
}

func (s *stubReportStore) GetReportByIDRepo(_ context.Context, _ uuid.UUID, _ uuid.UUID) (reportWithVote, error) {
	s.getCalls++
	return s.report, s.getErr
}

func (s *stubReportStore) DeleteReportRepo(_ context.Context, _ uuid.UUID, _ uuid.UUID) error {
	return s.deleteErr
}

func (s *stubReportStore) UpdateReportStatusRepo(_ context.Context, _ uuid.UUID, _ string) error {
	return s.statusErr
}

func newTestAPI(store *stubReportStore) *API {
	ws := websockets.NewWebSocketManager()
	go ws.Run()
	return &API{
		Deps:  &deps.Dependencies{WebSocket: ws},
		store: store,
	}
}

func TestCastVoteHelperOutcomes(t *testing.T) {
	owner := uuid.New()
	voter := uuid.New()
	reportID := uuid.New()

	testCases := []struct {
		name       string
		castErr    error
		wantStatus string
	}{
		{"Unknown report", ErrReportNotFound, values.NotFound},
		{"Own report forbidden", ErrOwnReportVote, values.NotAllowed},
		{"Second vote conflicts", ErrAlreadyVoted, values.Conflict},
		{"Storage failure", errors.New("connection reset"), values.Error},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store := &stubReportStore{castErr: tc.castErr}
			api := newTestAPI(store)

			_, status, _, err := api.CastVoteHelper(context.Background(), reportID, voter, values.VoteSupport)
			if status != tc.wantStatus {
				t.Errorf("status = %q; want %q", status, tc.wantStatus)
			}
			if err == nil {
				t.Error("expected the repo error to propagate")
			}
			if store.getCalls != 0 {
				t.Errorf("report re-fetched %d times on a rejected vote; counts must stay as served", store.getCalls)
			}
		})
	}

	t.Run("Successful vote", func(t *testing.T) {
		store := &stubReportStore{
			castVote: model.ReportVote{
				ID: uuid.New(), ReportID: reportID, UserID: voter, Direction: values.VoteSupport,
			},
			report: reportWithVote{
				Report: model.CivicReport{ID: reportID, CreatedByID: owner, SupportCount: 3},
			},
		}
		api := newTestAPI(store)

		annotated, status, _, err := api.CastVoteHelper(context.Background(), reportID, voter, values.VoteSupport)
		if err != nil {
			t.Fatalf("CastVoteHelper returned error %v", err)
		}
		if status != values.Success {
			t.Errorf("status = %q; want %q", status, values.Success)
		}
		if store.getCalls != 1 {
			t.Errorf("report fetched %d times; want 1", store.getCalls)
		}
		if annotated.SupportCount != 3 {
			t.Errorf("SupportCount = %d; want the stored count", annotated.SupportCount)
		}
		if !annotated.HasVoted || annotated.CanVote {
			t.Error("voter should be hasVoted=true, canVote=false after casting")
		}
		if annotated.UserVote == nil || *annotated.UserVote != values.VoteSupport {
			t.Errorf("UserVote = %v; want %q", annotated.UserVote, values.VoteSupport)
		}
	})
}

func TestWithdrawReportHelperOutcomes(t *testing.T) {
	testCases := []struct {
		name       string
		deleteErr  error
		wantStatus string
		wantErr    bool
	}{
		{"Owner withdraws", nil, values.Success, false},
		{"Unknown report", ErrReportNotFound, values.NotFound, true},
		{"Non-owner forbidden", ErrNotReportOwner, values.NotAllowed, true},
		{"Storage failure", errors.New("connection reset"), values.Error, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			api := newTestAPI(&stubReportStore{deleteErr: tc.deleteErr})

			status, _, err := api.WithdrawReportHelper(context.Background(), uuid.New(), uuid.New())
			if status != tc.wantStatus {
				t.Errorf("status = %q; want %q", status, tc.wantStatus)
			}
			if (err != nil) != tc.wantErr {
				t.Errorf("err = %v; wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestUpdateReportStatusHelperOutcomes(t *testing.T) {
	testCases := []struct {
		name       string
		statusErr  error
		wantStatus string
	}{
		{"Status updated", nil, values.Success},
		{"Unknown report", ErrReportNotFound, values.NotFound},
		{"Storage failure", errors.New("connection reset"), values.Error},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			api := newTestAPI(&stubReportStore{statusErr: tc.statusErr})

			status, _, _ := api.UpdateReportStatusHelper(context.Background(), uuid.New(), values.StatusEscalated)
			if status != tc.wantStatus {
				t.Errorf("status = %q; want %q", status, tc.wantStatus)
			}
		})
	}
}
