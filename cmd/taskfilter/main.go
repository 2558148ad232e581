// Command taskfilter evaluates a filter tree against a set of task
// records and manages saved views.
//
// Usage:
//
//	taskfilter -tasks tasks.json -filter filter.json
//	taskfilter -tasks tasks.json -view my-view
//	taskfilter -filter filter.json -save-view my-view
//	taskfilter -list-views
//	taskfilter -delete-view my-view
//
// Configuration comes from TASKFILTER_* environment variables (database
// path, log level/format, timezone).
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/renatomen/tasknotes-sub005/internal/config"
	"github.com/renatomen/tasknotes-sub005/internal/dateutil"
	"github.com/renatomen/tasknotes-sub005/internal/domain"
	"github.com/renatomen/tasknotes-sub005/internal/filter"
	sqlstorage "github.com/renatomen/tasknotes-sub005/internal/storage/sql"
	"github.com/renatomen/tasknotes-sub005/internal/storage/sql/repository"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to run: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	tasksPath := flag.String("tasks", "", "Path to a JSON file with task records")
	filterPath := flag.String("filter", "", "Path to a JSON file with a filter tree")
	viewName := flag.String("view", "", "Run a saved view instead of -filter")
	saveView := flag.String("save-view", "", "Save the -filter tree under this name")
	listViews := flag.Bool("list-views", false, "List saved views")
	deleteView := flag.String("delete-view", "", "Delete the named saved view")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	ctx := context.Background()

	switch {
	case *listViews:
		return runListViews(ctx, cfg)
	case *deleteView != "":
		return runDeleteView(ctx, cfg, *deleteView)
	case *saveView != "":
		if *filterPath == "" {
			return fmt.Errorf("-save-view requires -filter")
		}
		return runSaveView(ctx, cfg, *saveView, *filterPath)
	case *tasksPath != "":
		return runFilter(ctx, cfg, *tasksPath, *filterPath, *viewName)
	default:
		flag.Usage()
		return fmt.Errorf("nothing to do: pass -tasks, -save-view, -list-views, or -delete-view")
	}
}

func newLogger(cfg config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func openStore(ctx context.Context, cfg config.Config) (*repository.Store, error) {
	store, err := sqlstorage.NewStore(ctx, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open view store at %s: %w", cfg.DBPath, err)
	}
	return store, nil
}

func loadTree(path string) (filter.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read filter file: %w", err)
	}
	tree, err := filter.UnmarshalNode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode filter tree: %w", err)
	}
	if err := filter.Validate(tree, filter.Strict); err != nil {
		return nil, fmt.Errorf("filter tree is incomplete: %w", err)
	}
	return tree, nil
}

func loadTasks(path string) ([]*domain.Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tasks file: %w", err)
	}
	var tasks []*domain.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %w", err)
	}
	return tasks, nil
}

func runFilter(ctx context.Context, cfg config.Config, tasksPath, filterPath, viewName string) error {
	var tree filter.Node
	var err error

	switch {
	case filterPath != "":
		tree, err = loadTree(filterPath)
	case viewName != "":
		var store *repository.Store
		store, err = openStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		var view *repository.SavedView
		view, err = store.GetView(ctx, viewName)
		if err == nil {
			tree = view.Tree
		}
	default:
		return fmt.Errorf("pass -filter or -view to select a filter tree")
	}
	if err != nil {
		return err
	}

	tasks, err := loadTasks(tasksPath)
	if err != nil {
		return err
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	evaluator := &filter.Evaluator{
		Dates: dateutil.NewResolver(loc),
	}

	matched, err := evaluator.Filter(tree, tasks)
	if err != nil {
		return fmt.Errorf("filter run failed: %w", err)
	}
	slog.Info("filter run complete", "total", len(tasks), "matched", len(matched))

	out, err := json.MarshalIndent(matched, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

func runSaveView(ctx context.Context, cfg config.Config, name, filterPath string) error {
	tree, err := loadTree(filterPath)
	if err != nil {
		return err
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	view, err := store.SaveView(ctx, name, tree)
	if err != nil {
		return err
	}
	slog.Info("view saved", "name", view.Name, "id", view.ID)
	return nil
}

func runListViews(ctx context.Context, cfg config.Config) error {
	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	views, err := store.ListViews(ctx)
	if err != nil {
		return err
	}
	for _, view := range views {
		fmt.Printf("%s\t(updated %s)\n", view.Name, view.UpdatedAt.Format("2006-01-02 15:04"))
	}
	if len(views) == 0 {
		fmt.Println("no saved views")
	}
	return nil
}

func runDeleteView(ctx context.Context, cfg config.Config, name string) error {
	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.DeleteView(ctx, name); err != nil {
		return err
	}
	slog.Info("view deleted", "name", name)
	return nil
}
