package bootstrap

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hashicorp/go-hclog"

	activityinadapter "tally/internal/modules/activity/adapter/in"
	activityservice "tally/internal/modules/activity/service"
	activityusecase "tally/internal/modules/activity/usecase"
	classifyinadapter "tally/internal/modules/classify/adapter/in"
	classifyoutadapter "tally/internal/modules/classify/adapter/out"
	classifyservice "tally/internal/modules/classify/service"
	classifyusecase "tally/internal/modules/classify/usecase"
	coverageinadapter "tally/internal/modules/coverage/adapter/in"
	coverageservice "tally/internal/modules/coverage/service"
	coverageusecase "tally/internal/modules/coverage/usecase"
	ingestinadapter "tally/internal/modules/ingest/adapter/in"
	ingestoutadapter "tally/internal/modules/ingest/adapter/out"
	ingestport "tally/internal/modules/ingest/port/out"
	ingestservice "tally/internal/modules/ingest/service"
	ingestusecase "tally/internal/modules/ingest/usecase"
	metricsinadapter "tally/internal/modules/metrics/adapter/in"
	metricsoutadapter "tally/internal/modules/metrics/adapter/out"
	metricsservice "tally/internal/modules/metrics/service"
	metricsusecase "tally/internal/modules/metrics/usecase"
	"tally/internal/platform/config"
	uiapp "tally/internal/ui/app"
)

type App struct {
	IngestCLI   ingestinadapter.CLIHandler
	ActivityCLI activityinadapter.CLIHandler
	CoverageCLI coverageinadapter.CLIHandler
	ClassifyCLI classifyinadapter.CLIHandler
	MetricsCLI  metricsinadapter.CLIHandler
}

func New(cfg config.Config, log hclog.Logger) *App {
	scanners := []ingestport.EventScanner{
		ingestoutadapter.NewClaudeScanner(log.Named("claude")),
		ingestoutadapter.NewCodexScanner(log.Named("codex")),
	}
	ingestSvc := ingestservice.NewEventService(scanners, ingestoutadapter.NewFSTreeSyncer(log), log)
	ingestUC := ingestusecase.NewInteractor(ingestSvc)

	activityUC := activityusecase.NewInteractor(activityservice.NewActivityService())

	coverageUC := coverageusecase.NewInteractor(coverageservice.NewCoverageService(log.Named("coverage")))

	classifySvc := classifyservice.NewClassifyService(
		classifyoutadapter.NewGitRepoResolver(log.Named("git")),
		classifyoutadapter.NewGitAdoptionProbe(log.Named("git")),
		log.Named("classify"),
	)
	classifyUC := classifyusecase.NewInteractor(classifySvc)

	commitSource := metricsoutadapter.NewGitCommitSource(log.Named("git"))
	metricsSvc := metricsservice.NewMetricsService(commitSource, cfg, log.Named("metrics"))
	metricsUC := metricsusecase.NewInteractor(
		ingestUC, activityUC, coverageUC, classifyUC,
		metricsSvc, metricsoutadapter.NewSQLiteProjector(), cfg, log.Named("metrics"),
	)

	return &App{
		IngestCLI:   ingestinadapter.NewCLIHandler(ingestUC),
		ActivityCLI: activityinadapter.NewCLIHandler(activityUC),
		CoverageCLI: coverageinadapter.NewCLIHandler(coverageUC),
		ClassifyCLI: classifyinadapter.NewCLIHandler(classifyUC),
		MetricsCLI:  metricsinadapter.NewCLIHandler(metricsUC),
	}
}

func RunTUI(app *App, opts uiapp.Options) error {
	model := uiapp.NewModel(app.MetricsCLI, opts)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
