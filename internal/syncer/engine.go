package syncer

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vibesync/vibesync/internal/board"
	"github.com/vibesync/vibesync/internal/config"
	"github.com/vibesync/vibesync/internal/github"
)

// IssueSource fetches open issues for a repository.
type IssueSource interface {
	FetchOpenIssues(ctx context.Context, repo string) ([]github.Issue, error)
}

// BoardAPI is the slice of the board client the engine needs.
type BoardAPI interface {
	FetchTasks(ctx context.Context, projectID string) ([]board.Task, error)
	CreateTask(ctx context.Context, projectID, title, content string) error
}

// Engine runs sync passes over the configured project mappings. Mappings are
// processed strictly sequentially; every client failure degrades that
// mapping and the pass continues. The next cycle is the implicit retry.
type Engine struct {
	cfg    *config.Config
	source IssueSource
	board  BoardAPI
	logger *logrus.Logger
}

// NewEngine creates an Engine over the given collaborators.
func NewEngine(cfg *config.Config, source IssueSource, boardAPI BoardAPI, logger *logrus.Logger) *Engine {
	if logger == nil {
		logger = logrus.New()
	}
	return &Engine{
		cfg:    cfg,
		source: source,
		board:  boardAPI,
		logger: logger,
	}
}

// MappingResult summarizes one mapping's pass.
type MappingResult struct {
	Mapping  config.ProjectMapping
	Issues   int
	Existing int
	Created  int
	Failed   int
}

// Run executes sync passes until ctx is canceled. With once set it performs
// exactly one full pass over all mappings and returns without sleeping.
// Cancellation is honored between mappings and between sleep ticks; it never
// aborts an in-flight fetch or create.
func (e *Engine) Run(ctx context.Context, once bool) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		run := uuid.NewString()[:8]
		log := e.logger.WithField("run", run)

		for _, mapping := range e.cfg.Projects {
			if ctx.Err() != nil {
				log.Info("shutdown requested, finishing current sync")
				return ctx.Err()
			}
			res := e.syncMapping(ctx, mapping)
			log.WithFields(logrus.Fields{
				"repo":       mapping.GitHubRepo,
				"project_id": mapping.VibeProjectID,
				"issues":     res.Issues,
				"created":    res.Created,
				"failed":     res.Failed,
			}).Info("mapping synced")
		}

		if once {
			log.Info("single sync complete")
			return nil
		}

		log.WithField("interval_s", e.cfg.SyncIntervalSeconds).Info("sync complete, sleeping")
		if err := e.sleep(ctx); err != nil {
			return err
		}
	}
}

// MappingPlan reports what one mapping's pass would create.
type MappingPlan struct {
	Mapping    config.ProjectMapping
	IssueCount int
	TaskCount  int
	NewIssues  []github.Issue
}

// Plan runs the fetch/dedupe pipeline over all mappings without creating
// anything.
func (e *Engine) Plan(ctx context.Context) []MappingPlan {
	plans := make([]MappingPlan, 0, len(e.cfg.Projects))
	for _, mapping := range e.cfg.Projects {
		issues, tasks := e.fetchPair(ctx, mapping)
		idx := NewTaskIndex(tasks)

		plan := MappingPlan{
			Mapping:    mapping,
			IssueCount: len(issues),
			TaskCount:  len(tasks),
		}
		for _, issue := range issues {
			if !idx.IsDuplicate(issue) {
				plan.NewIssues = append(plan.NewIssues, issue)
			}
		}
		plans = append(plans, plan)
	}
	return plans
}

// syncMapping performs fetch → dedupe → create for one mapping.
func (e *Engine) syncMapping(ctx context.Context, mapping config.ProjectMapping) MappingResult {
	log := e.logger.WithFields(logrus.Fields{
		"repo":       mapping.GitHubRepo,
		"project_id": mapping.VibeProjectID,
	})
	log.Info("syncing")

	issues, tasks := e.fetchPair(ctx, mapping)
	idx := NewTaskIndex(tasks)

	res := MappingResult{Mapping: mapping, Issues: len(issues), Existing: len(tasks)}
	for _, issue := range issues {
		if idx.IsDuplicate(issue) {
			log.WithField("issue", issue.Number).Debug("skipping duplicate issue")
			continue
		}

		log.WithFields(logrus.Fields{
			"issue": issue.Number,
			"title": issue.Title,
		}).Info("creating task")

		err := e.board.CreateTask(e.callCtx(ctx), mapping.VibeProjectID, issue.Title, TaskContent(issue))
		if err != nil {
			log.WithField("issue", issue.Number).WithError(err).Error("create failed")
			res.Failed++
			continue
		}
		// Suppress same-URL/same-title issues later in this pass.
		idx.Add(issue.Title, issue.URL)
		res.Created++
	}
	return res
}

// fetchPair fetches the mapping's issues and tasks, degrading either side to
// empty on error.
func (e *Engine) fetchPair(ctx context.Context, mapping config.ProjectMapping) ([]github.Issue, []board.Task) {
	issues, err := e.source.FetchOpenIssues(e.callCtx(ctx), mapping.GitHubRepo)
	if err != nil {
		// Degrades to "no issues this cycle"; the client already logged.
		issues = nil
	}
	e.logger.WithFields(logrus.Fields{
		"repo":  mapping.GitHubRepo,
		"count": len(issues),
	}).Info("fetched open issues")

	tasks, err := e.board.FetchTasks(e.callCtx(ctx), mapping.VibeProjectID)
	if err != nil {
		// An empty index means every issue looks new; creates for actual
		// duplicates will then fail or duplicate, which the next healthy
		// cycle does not repeat.
		tasks = nil
	}
	return issues, tasks
}

// callCtx detaches client calls from the shutdown signal: an in-flight fetch
// or create completes or times out on its own, and cancellation is only
// observed between operations.
func (e *Engine) callCtx(ctx context.Context) context.Context {
	return context.WithoutCancel(ctx)
}

// sleep waits the configured interval in one-second ticks so shutdown
// latency stays bounded at a second regardless of the interval.
func (e *Engine) sleep(ctx context.Context) error {
	for i := 0; i < e.cfg.SyncIntervalSeconds; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second):
		}
	}
	return nil
}
