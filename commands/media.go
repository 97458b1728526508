package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"cblocks/media"
	"cblocks/state"
)

// Media lists images of configured media library, optionally preparing their
// thumbnails.
func Media(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("media")

	if dir := cmd.Args().Get(0); dir != "" {
		env.Cfg.Media.Library = dir
	}
	lib, err := media.NewLibrary(&env.Cfg.Media, log)
	if err != nil {
		return err
	}
	return listMedia(ctx, lib, cmd.Bool("thumbnails"), os.Stdout, log)
}

func listMedia(ctx context.Context, lib *media.Library, thumbnails bool, out io.Writer, log *zap.Logger) error {
	names, err := lib.List()
	if err != nil {
		return err
	}
	failed := 0
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return err
		}
		a, err := lib.Select(name)
		if err != nil {
			log.Warn("Skipping media", zap.String("name", name), zap.Error(err))
			continue
		}
		line := fmt.Sprintf("%s\t%s\t%s", a.ID, a.URL, a.Alt)
		if thumbnails {
			thumb, err := lib.Thumbnail(name)
			if err != nil {
				log.Error("Unable to prepare thumbnail", zap.String("name", name), zap.Error(err))
				failed++
			} else {
				line += "\t" + thumb
			}
		}
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	log.Info("Media listed", zap.Int("count", len(names)))
	if failed > 0 {
		return fmt.Errorf("unable to prepare %d thumbnails", failed)
	}
	return nil
}
