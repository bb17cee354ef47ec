package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestSetupLogger(t *testing.T) {
	newApp := func(action cli.ActionFunc) *cli.App {
		return &cli.App{
			Name: "test",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "log-level",
					Aliases: []string{"l"},
					Value:   "info",
				},
			},
			Before: setupLogger,
			Action: action,
		}
	}

	t.Run("valid levels accepted", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error"} {
			app := newApp(func(c *cli.Context) error { return nil })
			err := app.Run([]string{"test", "--log-level", level})
			require.NoError(t, err, "level %q", level)
		}
	})

	t.Run("invalid level rejected", func(t *testing.T) {
		app := newApp(func(c *cli.Context) error { return nil })
		err := app.Run([]string{"test", "--log-level", "verbose"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})

	t.Run("default is info", func(t *testing.T) {
		app := newApp(func(c *cli.Context) error {
			assert.Equal(t, "info", c.String("log-level"))
			return nil
		})
		require.NoError(t, app.Run([]string{"test"}))
	})

	t.Run("alias -l works", func(t *testing.T) {
		app := newApp(func(c *cli.Context) error {
			assert.Equal(t, "debug", c.String("log-level"))
			return nil
		})
		require.NoError(t, app.Run([]string{"test", "-l", "debug"}))
	})
}

func TestIngestCommand_RequiresCSVArgument(t *testing.T) {
	app := &cli.App{
		Name: "statseek",
		Commands: []*cli.Command{
			{
				Name:   "ingest",
				Action: ingestCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "db", Required: true},
					&cli.StringFlag{Name: "embedding-model", Required: true},
					&cli.StringFlag{Name: "embedding-host", Value: "http://localhost:11434/v1"},
					&cli.IntFlag{Name: "pool-size", Value: 4},
					&cli.IntFlag{Name: "batch-size", Value: 32},
				},
			},
		},
	}

	err := app.Run([]string{"statseek", "ingest", "--db", t.TempDir(), "--embedding-model", "m"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CSV")
}

func TestSearchCommand_RequiresQuery(t *testing.T) {
	app := &cli.App{
		Name: "statseek",
		Commands: []*cli.Command{
			{
				Name:   "search",
				Action: searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "db", Required: true},
					&cli.IntFlag{Name: "top-k", Value: 10},
				},
			},
		},
	}

	err := app.Run([]string{"statseek", "search", "--db", t.TempDir()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query required")
}
