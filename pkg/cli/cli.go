package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/igolaizola/musicstore/pkg/cmd/analyze"
	"github.com/igolaizola/musicstore/pkg/cmd/audio"
	"github.com/igolaizola/musicstore/pkg/cmd/cover"
	"github.com/igolaizola/musicstore/pkg/cmd/export"
	"github.com/igolaizola/musicstore/pkg/cmd/migrate"
	"github.com/igolaizola/musicstore/pkg/cmd/song"
	"github.com/igolaizola/musicstore/pkg/cmd/web"
	"github.com/igolaizola/musicstore/pkg/sound"
	"github.com/peterbourgon/ff/ffyaml"
	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"
)

const envPrefix = "MUSICSTORE"

func New(version, commit, date string) *ffcli.Command {
	fs := flag.NewFlagSet("musicstore", flag.ExitOnError)

	return &ffcli.Command{
		ShortUsage: "musicstore [flags] <subcommand>",
		FlagSet:    fs,
		Exec: func(context.Context, []string) error {
			return flag.ErrHelp
		},
		Subcommands: []*ffcli.Command{
			newVersionCommand(version, commit, date),
			newServeCommand(),
			newSongCommand(),
			newCoverCommand(),
			newAudioCommand(),
			newAnalyzeCommand(),
			newExportCommand(),
			newMigrateCommand(),
		},
	}
}

func newVersionCommand(version, commit, date string) *ffcli.Command {
	return &ffcli.Command{
		Name:       "version",
		ShortUsage: "musicstore version",
		ShortHelp:  "print version",
		Exec: func(ctx context.Context, args []string) error {
			v := version
			if v == "" {
				if buildInfo, ok := debug.ReadBuildInfo(); ok {
					v = buildInfo.Main.Version
				}
			}
			if v == "" {
				v = "dev"
			}
			versionFields := []string{v}
			if commit != "" {
				versionFields = append(versionFields, commit)
			}
			if date != "" {
				versionFields = append(versionFields, date)
			}
			fmt.Println(strings.Join(versionFields, " "))
			return nil
		},
	}
}

func options() []ff.Option {
	return []ff.Option{
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ffyaml.Parser),
		ff.WithEnvVarPrefix(envPrefix),
	}
}

func newServeCommand() *ffcli.Command {
	cmd := "serve"
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	_ = fs.String("config", "", "config file (optional)")

	cfg := &web.Config{}

	fs.BoolVar(&cfg.Debug, "debug", false, "debug mode")
	fs.StringVar(&cfg.Addr, "addr", ":1337", "address to listen on")
	fsMapVar(fs, &cfg.Credentials, "creds", nil, "credentials to use (semicolon separated) Example: user1:pass1;user2:pass2")

	fs.Int64Var(&cfg.Seed, "seed", web.DefaultSeed, "default catalog seed")
	fs.StringVar(&cfg.Language, "language", "en-US", "default language")
	fs.Float64Var(&cfg.AverageLikes, "average-likes", web.DefaultAverageLikes, "default average likes")
	fs.IntVar(&cfg.PageSize, "page-size", web.DefaultPageSize, "default page size")
	fs.IntVar(&cfg.Duration, "duration", sound.DefaultDuration, "audio duration in seconds")
	fs.IntVar(&cfg.Channels, "channels", 1, "audio channels (1 or 2)")
	fs.IntVar(&cfg.Concurrency, "concurrency", 4, "maximum concurrent media generations")

	return &ffcli.Command{
		Name:       cmd,
		ShortUsage: fmt.Sprintf("musicstore %s [flags]", cmd),
		Options:    options(),
		ShortHelp:  fmt.Sprintf("musicstore %s http api", cmd),
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			return web.Serve(ctx, cfg)
		},
	}
}

func newSongCommand() *ffcli.Command {
	cmd := "song"
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	_ = fs.String("config", "", "config file (optional)")

	cfg := &song.Config{}

	fs.BoolVar(&cfg.Debug, "debug", false, "debug mode")
	fs.Int64Var(&cfg.Seed, "seed", web.DefaultSeed, "catalog seed")
	fs.StringVar(&cfg.Language, "language", "en-US", "language")
	fs.Float64Var(&cfg.AverageLikes, "average-likes", web.DefaultAverageLikes, "average likes")
	fs.IntVar(&cfg.Index, "index", 0, "song index (0 prints a page)")
	fs.IntVar(&cfg.Page, "page", 1, "page number")
	fs.IntVar(&cfg.PageSize, "page-size", web.DefaultPageSize, "page size")
	fs.StringVar(&cfg.Output, "output", "", "output json file (default stdout)")

	return &ffcli.Command{
		Name:       cmd,
		ShortUsage: fmt.Sprintf("musicstore %s [flags]", cmd),
		Options:    options(),
		ShortHelp:  fmt.Sprintf("musicstore %s metadata", cmd),
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			return song.Run(ctx, cfg)
		},
	}
}

func newCoverCommand() *ffcli.Command {
	cmd := "cover"
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	_ = fs.String("config", "", "config file (optional)")

	cfg := &cover.Config{}

	fs.BoolVar(&cfg.Debug, "debug", false, "debug mode")
	fs.Int64Var(&cfg.Seed, "seed", web.DefaultSeed, "catalog seed")
	fs.StringVar(&cfg.Language, "language", "en-US", "language")
	fs.IntVar(&cfg.Index, "index", 1, "song index")
	fs.StringVar(&cfg.Title, "title", "", "title override")
	fs.StringVar(&cfg.Artist, "artist", "", "artist override")
	fs.StringVar(&cfg.Output, "output", "cover.png", "output file (png or jpg)")
	fs.StringVar(&cfg.BoldFont, "bold-font", "", "bold font file (optional)")
	fs.StringVar(&cfg.RegularFont, "regular-font", "", "regular font file (optional)")

	return &ffcli.Command{
		Name:       cmd,
		ShortUsage: fmt.Sprintf("musicstore %s [flags]", cmd),
		Options:    options(),
		ShortHelp:  fmt.Sprintf("musicstore %s image", cmd),
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			return cover.Run(ctx, cfg)
		},
	}
}

func newAudioCommand() *ffcli.Command {
	cmd := "audio"
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	_ = fs.String("config", "", "config file (optional)")

	cfg := &audio.Config{}

	fs.BoolVar(&cfg.Debug, "debug", false, "debug mode")
	fs.Int64Var(&cfg.Seed, "seed", web.DefaultSeed, "catalog seed")
	fs.IntVar(&cfg.Index, "index", 1, "song index")
	fs.IntVar(&cfg.Duration, "duration", sound.DefaultDuration, "duration in seconds")
	fs.IntVar(&cfg.Channels, "channels", 1, "channels (1 or 2)")
	fs.StringVar(&cfg.Output, "output", "song.wav", "output wav file")
	fs.StringVar(&cfg.Waveform, "waveform", "", "waveform plot file (optional)")
	fs.StringVar(&cfg.RMS, "rms", "", "rms plot file (optional)")

	return &ffcli.Command{
		Name:       cmd,
		ShortUsage: fmt.Sprintf("musicstore %s [flags]", cmd),
		Options:    options(),
		ShortHelp:  fmt.Sprintf("musicstore %s clip", cmd),
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			return audio.Run(ctx, cfg)
		},
	}
}

func newAnalyzeCommand() *ffcli.Command {
	cmd := "analyze"
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	_ = fs.String("config", "", "config file (optional)")

	cfg := &analyze.Config{}
	fs.BoolVar(&cfg.Debug, "debug", false, "debug mode")
	fs.StringVar(&cfg.Input, "input", "", "input wav file")
	fs.StringVar(&cfg.Output, "output", ".", "output folder")

	return &ffcli.Command{
		Name:       cmd,
		ShortUsage: fmt.Sprintf("musicstore %s [flags]", cmd),
		Options:    options(),
		ShortHelp:  fmt.Sprintf("musicstore %s wav file", cmd),
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			return analyze.Run(ctx, cfg)
		},
	}
}

func newExportCommand() *ffcli.Command {
	cmd := "export"
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	_ = fs.String("config", "", "config file (optional)")

	cfg := &export.Config{}

	fs.BoolVar(&cfg.Debug, "debug", false, "debug mode")
	fs.StringVar(&cfg.DBType, "db-type", "", "db type (sqlite, mysql, postgres), empty to skip the database")
	fs.StringVar(&cfg.DBConn, "db-conn", "", "path for sqlite, dsn for mysql or postgres")
	fs.StringVar(&cfg.FSType, "fs-type", "local", "fs type (local, s3)")
	fs.StringVar(&cfg.FSConn, "fs-conn", "export", "path for local, key:secret@bucket.region for s3")
	fs.DurationVar(&cfg.Timeout, "timeout", 0, "timeout for the process (0 means no timeout)")
	fs.IntVar(&cfg.Concurrency, "concurrency", 1, "number of concurrent songs")

	fs.StringVar(&cfg.ID, "id", "", "export id (default random ulid)")
	fs.Int64Var(&cfg.Seed, "seed", web.DefaultSeed, "catalog seed")
	fs.StringVar(&cfg.Language, "language", "en-US", "language")
	fs.Float64Var(&cfg.AverageLikes, "average-likes", web.DefaultAverageLikes, "average likes")
	fs.IntVar(&cfg.FromPage, "from-page", 1, "first page")
	fs.IntVar(&cfg.ToPage, "to-page", 0, "last page (0 means from page)")
	fs.IntVar(&cfg.PageSize, "page-size", web.DefaultPageSize, "page size")
	fs.IntVar(&cfg.Duration, "duration", sound.DefaultDuration, "audio duration in seconds")
	fs.IntVar(&cfg.Channels, "channels", 1, "audio channels (1 or 2)")
	fs.BoolVar(&cfg.SkipAudio, "skip-audio", false, "export covers and metadata only")

	return &ffcli.Command{
		Name:       cmd,
		ShortUsage: fmt.Sprintf("musicstore %s [flags]", cmd),
		Options:    options(),
		ShortHelp:  fmt.Sprintf("musicstore %s page range", cmd),
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			return export.Run(ctx, cfg)
		},
	}
}

func newMigrateCommand() *ffcli.Command {
	cmd := "migrate"
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	_ = fs.String("config", "", "config file (optional)")

	cfg := &migrate.Config{}

	fs.BoolVar(&cfg.Debug, "debug", false, "debug mode")
	fs.StringVar(&cfg.DBType, "db-type", "sqlite", "db type (sqlite, mysql, postgres)")
	fs.StringVar(&cfg.DBConn, "db-conn", "musicstore.db", "path for sqlite, dsn for mysql or postgres")

	return &ffcli.Command{
		Name:       cmd,
		ShortUsage: fmt.Sprintf("musicstore %s [flags]", cmd),
		Options:    options(),
		ShortHelp:  fmt.Sprintf("musicstore %s database", cmd),
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			return migrate.Run(ctx, cfg)
		},
	}
}

type mapValue struct {
	v *map[string]string
}

func (m *mapValue) String() string {
	if m.v == nil {
		return ""
	}
	return fmt.Sprintf("%v", map[string]string(*m.v))
}

func (m *mapValue) Set(value string) error {
	if m.v == nil {
		return errors.New("nil map reference")
	}
	pairs := strings.Split(value, ";")
	for _, pair := range pairs {
		parts := strings.SplitN(pair, ":", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid map entry: %s", pair)
		}
		(*m.v)[parts[0]] = parts[1]
	}
	return nil
}

func fsMapVar(fs *flag.FlagSet, p *map[string]string, name string, value map[string]string, usage string) {
	if value == nil {
		value = make(map[string]string)
	}
	*p = value
	fs.Var(&mapValue{p}, name, usage)
}
