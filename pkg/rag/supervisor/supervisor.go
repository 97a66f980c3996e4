package supervisor

import (
	"context"
	"fmt"
	"log"

	"grant-assistant-be/pkg/store"
)

// Route names the step the supervisor dispatches to next.
type Route string

const (
	RouteRetriever     Route = "document_retriever"
	RouteCrossDocument Route = "cross_document"
	RouteQA            Route = "qa_agent"
	RouteSourceTracker Route = "source_tracker"
	RouteEnd           Route = "__end__"
)

// Step is one pipeline stage. Execute mutates the shared state in
// place and must flip its own completion flag before returning.
type Step interface {
	Name() string
	Execute(ctx context.Context, state *store.QueryState)
}

// Supervisor routes a query through the pipeline. It is a pure
// dispatcher: the only routing input is the set of completion flags,
// and it never touches any other state field.
type Supervisor struct {
	steps  map[Route]Step
	logger *log.Logger
}

func NewSupervisor(retriever, crossDocument, qa, sourceTracker Step, logger *log.Logger) *Supervisor {
	return &Supervisor{
		steps: map[Route]Step{
			RouteRetriever:     retriever,
			RouteCrossDocument: crossDocument,
			RouteQA:            qa,
			RouteSourceTracker: sourceTracker,
		},
		logger: logger,
	}
}

// Next picks the first step in the fixed priority order whose flag is
// still false. All flags set means the workflow is done.
func (s *Supervisor) Next(state *store.QueryState) Route {
	switch {
	case !state.RetrievalPerformed:
		return RouteRetriever
	case !state.CrossDocumentPerformed:
		return RouteCrossDocument
	case !state.QAPerformed:
		return RouteQA
	case !state.SourceTrackingPerformed:
		return RouteSourceTracker
	default:
		return RouteEnd
	}
}

// Run loops dispatch until the terminal route. The iteration cap
// guards against a step that fails to set its flag; with well-behaved
// steps the loop runs exactly once per stage.
func (s *Supervisor) Run(ctx context.Context, state *store.QueryState) error {
	const maxIterations = 10

	for i := 0; i < maxIterations; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		route := s.Next(state)
		if route == RouteEnd {
			s.logger.Printf("[SUPERVISOR] Workflow complete for session %s", state.SessionID)
			return nil
		}

		step, ok := s.steps[route]
		if !ok {
			return fmt.Errorf("no step registered for route %s", route)
		}

		s.logger.Printf("[SUPERVISOR] Dispatching to %s", step.Name())
		step.Execute(ctx, state)
	}

	return fmt.Errorf("workflow did not terminate after %d iterations", 10)
}
