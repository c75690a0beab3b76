package batch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/joseph-ayodele/fuel-docs/constants"
	"github.com/joseph-ayodele/fuel-docs/internal/common"
	"github.com/joseph-ayodele/fuel-docs/internal/core"
	"github.com/joseph-ayodele/fuel-docs/internal/entity"
)

// stubProcessor behaves according to the document path.
type stubProcessor struct{}

func (stubProcessor) Process(ctx context.Context, doc core.Document) (core.Result, error) {
	if common.DocumentIDFromContext(ctx) == "" {
		return core.Result{}, errors.New("no document id in context")
	}
	switch doc.Path {
	case "empty.txt":
		return core.Result{}, common.NoDataError("loading note")
	case "partial.xml":
		return core.Result{}, common.NoRecordError("invoice", []string{"date"})
	case "slow.txt":
		<-ctx.Done()
		return core.Result{}, ctx.Err()
	case "hang.txt":
		time.Sleep(time.Second)
		return core.Result{}, nil
	case "panic.txt":
		panic("index out of range")
	case "broken.json":
		return core.Result{}, errors.New("disk error")
	}
	return core.Result{Kind: doc.Kind, LoadingNote: &entity.LoadingNoteRecord{DocumentNumber: doc.Path}}, nil
}

func TestRun_IsolatesFailures(t *testing.T) {
	r := NewRunner(stubProcessor{}, WithDocumentTimeout(50*time.Millisecond))

	paths := []string{"a.txt", "empty.txt", "partial.xml", "slow.txt", "hang.txt", "panic.txt", "broken.json", "b.txt"}
	docs := make([]core.Document, len(paths))
	for i, p := range paths {
		docs[i] = core.Document{Kind: constants.KindLoadingNote, Path: p}
	}

	out := r.Run(context.Background(), docs)

	got := make([]constants.OutcomeStatus, len(out))
	for i, o := range out {
		got[i] = o.Status
		if o.Document.Path != paths[i] {
			t.Errorf("outcome %d is for %s, want %s", i, o.Document.Path, paths[i])
		}
	}
	want := []constants.OutcomeStatus{
		constants.OutcomeOK,
		constants.OutcomeNoData,
		constants.OutcomeNoRecord,
		constants.OutcomeTimeout,
		constants.OutcomeTimeout,
		constants.OutcomeFailed,
		constants.OutcomeFailed,
		constants.OutcomeOK,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("statuses (-want +got):\n%s", diff)
	}
	if out[7].Result.LoadingNote == nil || out[7].Result.LoadingNote.DocumentNumber != "b.txt" {
		t.Errorf("last result = %+v", out[7].Result)
	}
	if !errors.Is(out[5].Err, common.ErrInternal) {
		t.Errorf("panic err = %v", out[5].Err)
	}

	seen := map[string]bool{}
	for _, o := range out {
		if o.ID == "" || seen[o.ID] {
			t.Errorf("document id %q missing or repeated", o.ID)
		}
		seen[o.ID] = true
	}

	s := Summarize(out)
	if s[constants.OutcomeOK] != 2 || s[constants.OutcomeTimeout] != 2 || s[constants.OutcomeFailed] != 2 {
		t.Errorf("summary = %v", s)
	}
}

func TestRun_ParentCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out := NewRunner(stubProcessor{}).Run(ctx, []core.Document{{Path: "a.txt"}, {Path: "b.txt"}})
	for _, o := range out {
		if o.Status != constants.OutcomeFailed || !errors.Is(o.Err, context.Canceled) {
			t.Errorf("%s: status %s err %v", o.Document.Path, o.Status, o.Err)
		}
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		err  error
		want constants.OutcomeStatus
	}{
		{nil, constants.OutcomeOK},
		{context.DeadlineExceeded, constants.OutcomeTimeout},
		{common.WrapError(context.DeadlineExceeded, "read text"), constants.OutcomeTimeout},
		{common.NoDataError("x"), constants.OutcomeNoData},
		{common.NoRecordError("x", nil), constants.OutcomeNoRecord},
		{errors.New("boom"), constants.OutcomeFailed},
	}
	for _, tc := range cases {
		if got := Classify(tc.err); got != tc.want {
			t.Errorf("Classify(%v) = %s, want %s", tc.err, got, tc.want)
		}
	}
}
