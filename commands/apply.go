package commands

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	yaml "gopkg.in/yaml.v3"

	"cblocks/attrs"
	"cblocks/blocks"
	"cblocks/blocks/catalog"
	"cblocks/collection"
	"cblocks/config"
	"cblocks/media"
	"cblocks/state"
	"cblocks/storage"
)

// Script is sequence of operations applied to one block instance.
type Script struct {
	Ops []blocks.Op `yaml:"ops"`
}

// ParseScript decodes operations script. Both a document with "ops" and a
// bare list are accepted. Absent index or item is -1, so operation without
// address is rejected instead of landing on the first entry.
func ParseScript(data []byte) (*Script, error) {
	var s Script
	if err := decodeStrict(data, &s); err == nil {
		var addrs struct {
			Ops []address `yaml:"ops"`
		}
		if err := yaml.Unmarshal(data, &addrs); err != nil {
			return nil, fmt.Errorf("failed to decode operations script: %w", err)
		}
		unaddressed(s.Ops, addrs.Ops)
		return &s, nil
	}
	var ops []blocks.Op
	if err := decodeStrict(data, &ops); err != nil {
		return nil, fmt.Errorf("failed to decode operations script: %w", err)
	}
	var addrs []address
	if err := yaml.Unmarshal(data, &addrs); err != nil {
		return nil, fmt.Errorf("failed to decode operations script: %w", err)
	}
	unaddressed(ops, addrs)
	return &Script{Ops: ops}, nil
}

func decodeStrict(data []byte, v any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(v)
}

// address records which positions operation spells out.
type address struct {
	Index *int `yaml:"index"`
	Item  *int `yaml:"item"`
}

func unaddressed(ops []blocks.Op, addrs []address) {
	for i := range min(len(ops), len(addrs)) {
		if addrs[i].Index == nil {
			ops[i].Index = -1
		}
		if addrs[i].Item == nil {
			ops[i].Item = -1
		}
	}
}

// ReadScript loads operations script from file.
func ReadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read operations script: %w", err)
	}
	return ParseScript(data)
}

// Result summarizes applied script. Displayed counts operations which only
// changed editor display state, they are never persisted.
type Result struct {
	Applied   int
	Rejected  int
	Displayed int
}

// blockEnv prepares collaborators of block operations, media library is
// optional.
func blockEnv(env *state.LocalEnv, log *zap.Logger) (*blocks.Env, error) {
	benv := &blocks.Env{}
	if lib, err := media.NewLibrary(&env.Cfg.Media, log); err == nil {
		benv.Media = lib
	} else if !errors.Is(err, media.ErrNoLibrary) {
		return nil, err
	}
	return benv, nil
}

func Apply(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("apply")

	src, ops := cmd.Args().Get(0), cmd.Args().Get(1)
	if len(src) == 0 || len(ops) == 0 {
		return errors.New("block document and operations script must be specified")
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many arguments", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	script, err := ReadScript(ops)
	if err != nil {
		return err
	}

	// document is replaced in place, keep original for the report
	if err := env.Rpt.StoreCopy("source/"+filepath.Base(src), src); err != nil {
		log.Warn("Unable to copy document into debug report", zap.Error(err))
	}

	env.Database = cmd.String("store")
	if env.Database == "" && env.Cfg.Storage.Kind == config.StorageKindSqlite {
		env.Database = env.Cfg.Storage.Database
	}

	files := storage.NewFileHost(".", log)
	doc, err := files.LoadFile(src)
	if err != nil {
		return err
	}

	var host attrs.Host = files
	if env.Database != "" {
		db, err := storage.OpenSQLite(env.Database, log)
		if err != nil {
			return err
		}
		defer db.Close()
		// database copy wins once it exists, document file is only the seed
		if stored, err := db.Load(ctx, doc.ID); err == nil {
			doc = stored
		} else if !errors.Is(err, os.ErrNotExist) {
			return err
		} else if err := db.Replace(ctx, doc); err != nil {
			return err
		}
		host = db
	}

	benv, err := blockEnv(env, log)
	if err != nil {
		return err
	}

	log.Info("Applying operations", zap.String("block", doc.ID), zap.Stringer("kind", doc.Kind), zap.Int("ops", len(script.Ops)), zap.Bool("database", env.Database != ""))
	defer func(start time.Time) {
		log.Info("Operations completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	res, err := RunScript(ctx, attrs.NewStore(host, doc, log), script, benv, env, log)
	if err != nil {
		return err
	}
	log.Info("Script applied", zap.Int("applied", res.Applied), zap.Int("rejected", res.Rejected))
	return nil
}

// RunScript applies every operation through the store so host receives full
// attributes after each one. Rejected operations are skipped, any other error
// stops the script. Display operations go to editor session only.
func RunScript(ctx context.Context, store *attrs.Store, script *Script, benv *blocks.Env, env *state.LocalEnv, log *zap.Logger) (Result, error) {
	var res Result

	doc := store.Document()
	b, err := catalog.New(&env.Cfg.Blocks).Lookup(doc.Kind)
	if err != nil {
		return res, err
	}
	env.Dump(doc.ID+"-initial", store.Current())

	session := blocks.NewSession(b, benv)
	for i, op := range script.Ops {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if handled, err := session.Display(store.Current(), op); handled {
			switch {
			case attrs.Rejected(err):
				res.Rejected++
				log.Warn("Operation rejected", zap.Int("op", i+1), zap.Stringer("action", op), zap.Error(err))
			case err != nil:
				return res, fmt.Errorf("operation %d: %w", i+1, err)
			default:
				res.Displayed++
				log.Debug("Display operation, nothing to store", zap.Int("op", i+1), zap.Stringer("action", op))
			}
			continue
		}
		applied, err := store.Apply(ctx, op.String(), func(current collection.Fields) (collection.Fields, error) {
			return session.Apply(current, op)
		})
		if err != nil {
			return res, fmt.Errorf("operation %d: %w", i+1, err)
		}
		if !applied {
			res.Rejected++
			log.Warn("Operation rejected", zap.Int("op", i+1), zap.Stringer("action", op))
			continue
		}
		res.Applied++
		env.Dump(fmt.Sprintf("%s-%d-%s", doc.ID, i+1, op.Action), store.Current())
	}
	return res, nil
}
