package app

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/zurustar/robol/pkg/cli"
	"github.com/zurustar/robol/pkg/compiler"
	"github.com/zurustar/robol/pkg/compiler/ast"
	"github.com/zurustar/robol/pkg/interpreter"
	"github.com/zurustar/robol/pkg/logger"
	"github.com/zurustar/robol/pkg/report"
	"github.com/zurustar/robol/pkg/trace"
)

// Application はアプリケーションのメインロジックを管理する
type Application struct {
	stdout io.Writer // イベント出力先
	stderr io.Writer // ログ・ヘルプの出力先

	config *cli.Config
	log    *slog.Logger
	runID  string
}

// New Applicationを作成
func New(stdout, stderr io.Writer) *Application {
	return &Application{
		stdout: stdout,
		stderr: stderr,
	}
}

// Run コマンドライン引数を解析してアプリケーションを実行
func (app *Application) Run(args []string) error {
	cmd := cli.NewCommand(app.execute)
	cmd.SetArgs(args)
	cmd.SetOut(app.stdout)
	cmd.SetErr(app.stderr)
	return cmd.Execute()
}

// execute 設定が確定した後の処理
func (app *Application) execute(config *cli.Config) error {
	app.config = config

	// 1. ロガーの初期化
	if err := app.initLogger(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.log.Info("Application started", "script", config.ScriptPath, "config", config.ConfigPath)

	// 2. スクリプトの読み込みとコンパイル
	program, err := compiler.CompileFile(config.ScriptPath, config.Encoding)
	if err != nil {
		return fmt.Errorf("failed to compile script: %w", err)
	}

	app.log.Info("Script compiled successfully", "statements", len(program.Statements), "grid", program.Grid.String())

	// 3. 実行
	in := interpreter.New(program,
		interpreter.WithLogger(app.log),
		interpreter.WithMaxIterations(config.MaxIterations),
	)
	result, runErr := in.Run()
	if runErr != nil {
		app.log.Error("Script failed", "error", runErr, "events", len(result.Events))
	} else {
		app.log.Info("Script finished", "events", len(result.Events), "position", result.Position.String())
	}

	// 4. イベント出力（失敗時もそれまでのイベントを出力する）
	if err := app.writeReport(result.Events); err != nil {
		return fmt.Errorf("failed to write events: %w", err)
	}

	// 5. 軌跡画像（実行エラーがあればそちらを先に返す）
	var traceErr error
	if config.Trace != "" {
		if err := app.writeTrace(program, in.Robot(), result.Events); err != nil {
			traceErr = fmt.Errorf("failed to write trace: %w", err)
			app.log.Error("Trace not written", "path", config.Trace, "error", err)
		}
	}

	if runErr != nil {
		return errors.Join(fmt.Errorf("failed to run script: %w", runErr), traceErr)
	}
	if traceErr != nil {
		return traceErr
	}

	app.log.Info("Application terminated normally")
	return nil
}

// initLogger ロガーを初期化し、実行IDを付与する
func (app *Application) initLogger() error {
	if err := logger.InitLoggerWithOptions(app.config.LogLevel, app.config.LogFormat, app.stderr); err != nil {
		return err
	}
	app.runID = logger.NewRunID()
	app.log = logger.WithRunID(app.runID)
	return nil
}

// writeReport 指定された形式でイベント列を書き出す
func (app *Application) writeReport(events []interpreter.Event) error {
	encoder, err := report.New(app.config.Format)
	if err != nil {
		return err
	}
	return encoder.Encode(app.stdout, events)
}

// writeTrace 実行後の束縛でグリッドの大きさを評価し、軌跡をBMPで保存する
func (app *Application) writeTrace(program *ast.Program, robot *interpreter.Robot, events []interpreter.Event) error {
	east, north, err := interpreter.GridExtents(program.Grid, robot)
	if err != nil {
		return err
	}

	f, err := os.Create(app.config.Trace)
	if err != nil {
		return err
	}

	// 書き込みに失敗したら途中までのファイルを残さない
	if err := trace.Render(f, east, north, events, app.config.TraceScale); err != nil {
		f.Close()
		os.Remove(app.config.Trace)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(app.config.Trace)
		return err
	}

	app.log.Info("Trace written", "path", app.config.Trace, "grid", fmt.Sprintf("%d*%d", east, north))
	return nil
}
