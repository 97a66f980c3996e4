package supervisor

import (
	"context"
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"

	"grant-assistant-be/pkg/store"
)

type recordingStep struct {
	name   string
	order  *[]string
	mark   func(*store.QueryState)
	broken bool // never sets its flag
}

func (r *recordingStep) Name() string { return r.name }

func (r *recordingStep) Execute(ctx context.Context, state *store.QueryState) {
	*r.order = append(*r.order, r.name)
	if !r.broken {
		r.mark(state)
	}
}

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func newTestSupervisor(order *[]string, brokenStep string) *Supervisor {
	step := func(name string, mark func(*store.QueryState)) Step {
		return &recordingStep{name: name, order: order, mark: mark, broken: name == brokenStep}
	}
	return NewSupervisor(
		step("document_retriever", func(s *store.QueryState) { s.RetrievalPerformed = true }),
		step("cross_document", func(s *store.QueryState) { s.CrossDocumentPerformed = true }),
		step("qa_agent", func(s *store.QueryState) { s.QAPerformed = true }),
		step("source_tracker", func(s *store.QueryState) { s.SourceTrackingPerformed = true }),
		testLogger(),
	)
}

func TestSupervisorRunsStepsInPriorityOrder(t *testing.T) {
	var order []string
	sup := newTestSupervisor(&order, "")

	state := store.NewQueryState("what is the grant budget", "s1")
	err := sup.Run(context.Background(), state)

	assert.NoError(t, err)
	assert.Equal(t, []string{"document_retriever", "cross_document", "qa_agent", "source_tracker"}, order)
	assert.Equal(t, RouteEnd, sup.Next(state))
}

func TestSupervisorNextByFlags(t *testing.T) {
	var order []string
	sup := newTestSupervisor(&order, "")

	state := store.NewQueryState("q", "s1")
	assert.Equal(t, RouteRetriever, sup.Next(state))

	state.RetrievalPerformed = true
	assert.Equal(t, RouteCrossDocument, sup.Next(state))

	state.CrossDocumentPerformed = true
	assert.Equal(t, RouteQA, sup.Next(state))

	state.QAPerformed = true
	assert.Equal(t, RouteSourceTracker, sup.Next(state))

	state.SourceTrackingPerformed = true
	assert.Equal(t, RouteEnd, sup.Next(state))
}

func TestSupervisorStuckStepTerminates(t *testing.T) {
	var order []string
	sup := newTestSupervisor(&order, "cross_document")

	state := store.NewQueryState("q", "s1")
	err := sup.Run(context.Background(), state)

	assert.Error(t, err)
}

func TestSupervisorHonorsContextCancellation(t *testing.T) {
	var order []string
	sup := newTestSupervisor(&order, "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	state := store.NewQueryState("q", "s1")
	err := sup.Run(ctx, state)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, order)
}
