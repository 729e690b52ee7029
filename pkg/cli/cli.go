package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zurustar/robol/pkg/config"
)

// 環境変数名
const (
	EnvConfig        = "ROBOL_CONFIG"
	EnvLogLevel      = "ROBOL_LOG_LEVEL"
	EnvFormat        = "ROBOL_FORMAT"
	EnvEncoding      = "ROBOL_ENCODING"
	EnvMaxIterations = "ROBOL_MAX_ITERATIONS"
)

// Config はコマンドライン引数・環境変数・設定ファイルを統合した設定を保持する
type Config struct {
	ScriptPath    string // 実行するスクリプトのパス
	ConfigPath    string // 読み込んだ設定ファイル（なければ空）
	LogLevel      string // ログレベル（debug, info, warn, error）
	LogFormat     string // ログ形式（text, json）
	Format        string // イベント出力形式（text, json, yaml）
	Trace         string // 軌跡BMPの出力先（空なら出力しない）
	TraceScale    int    // 軌跡画像の1マスあたりのピクセル数
	Encoding      string // スクリプトの文字エンコーディング
	MaxIterations int    // ループ1つあたりの最大反復回数（0は無制限）
}

// flags はcobraにバインドするフラグ値
type flags struct {
	configPath    string
	logLevel      string
	logFormat     string
	format        string
	trace         string
	traceScale    int
	encoding      string
	maxIterations int
}

// NewCommand robolコマンドを作成する
// 引数の解析と設定の統合が済んだら run を呼ぶ
func NewCommand(run func(cfg *Config) error) *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "robol [flags] <script>",
		Short: "robol - グリッド上のロボットを動かすスクリプトを実行する",
		Long: `robol はスクリプトを読み込み、グリッド上のロボットを動かして
イベント列（開始位置・向きの変更・歩数・終了位置）を出力する。

設定の優先順位: フラグ > 環境変数 > 設定ファイル > デフォルト

Environment Variables:
  ROBOL_CONFIG=<file>           設定ファイル（TOML）
  ROBOL_LOG_LEVEL=<level>       ログレベル
  ROBOL_FORMAT=<format>         出力形式
  ROBOL_ENCODING=<label>        スクリプトの文字エンコーディング
  ROBOL_MAX_ITERATIONS=<n>      ループの最大反復回数`,
		Example: `  robol square.rbl
  robol --format json square.rbl
  robol -e shift_jis --trace path.bmp square.rbl
  ROBOL_LOG_LEVEL=debug robol square.rbl`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolve(cmd, &f, args[0])
			if err != nil {
				return err
			}
			return run(cfg)
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&f.configPath, "config", "c", "", "設定ファイル（TOML）")
	fs.StringVarP(&f.logLevel, "log-level", "l", "warn", "ログレベル（debug, info, warn, error）")
	fs.StringVar(&f.logFormat, "log-format", "text", "ログ形式（text, json）")
	fs.StringVarP(&f.format, "format", "f", "text", "出力形式（text, json, yaml）")
	fs.StringVar(&f.trace, "trace", "", "軌跡をBMPとして書き出すファイル")
	fs.IntVar(&f.traceScale, "trace-scale", 16, "軌跡画像の1マスあたりのピクセル数")
	fs.StringVarP(&f.encoding, "encoding", "e", "utf-8", "スクリプトの文字エンコーディング（utf-8, shift_jis など）")
	fs.IntVar(&f.maxIterations, "max-iterations", 0, "ループ1つあたりの最大反復回数（0は無制限）")

	return cmd
}

// resolve 設定ファイル → 環境変数 → フラグの順に上書きして設定を確定する
func resolve(cmd *cobra.Command, f *flags, scriptPath string) (*Config, error) {
	// 1. 設定ファイル（フラグ、環境変数の順に探す）
	configPath := f.configPath
	if !cmd.Flags().Changed("config") {
		configPath = os.Getenv(EnvConfig)
	}

	settings := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		settings = loaded
	}

	cfg := &Config{
		ScriptPath:    scriptPath,
		ConfigPath:    configPath,
		LogLevel:      settings.Log.Level,
		LogFormat:     settings.Log.Format,
		Format:        settings.Output.Format,
		Trace:         settings.Output.Trace,
		TraceScale:    settings.Output.TraceScale,
		Encoding:      settings.Run.Encoding,
		MaxIterations: settings.Run.MaxIterations,
	}

	// 2. 環境変数
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv(EnvFormat); v != "" {
		cfg.Format = strings.ToLower(v)
	}
	if v := os.Getenv(EnvEncoding); v != "" {
		cfg.Encoding = v
	}
	if v := os.Getenv(EnvMaxIterations); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %q", EnvMaxIterations, v)
		}
		cfg.MaxIterations = n
	}

	// 3. コマンドラインフラグ（明示的に指定されたものだけ）
	changed := cmd.Flags().Changed
	if changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if changed("log-format") {
		cfg.LogFormat = f.logFormat
	}
	if changed("format") {
		cfg.Format = f.format
	}
	if changed("trace") {
		cfg.Trace = f.trace
	}
	if changed("trace-scale") {
		cfg.TraceScale = f.traceScale
	}
	if changed("encoding") {
		cfg.Encoding = f.encoding
	}
	if changed("max-iterations") {
		cfg.MaxIterations = f.maxIterations
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate 統合後の設定を検証する
func (c *Config) validate() error {
	merged := config.Config{
		Run:    config.RunConfig{MaxIterations: c.MaxIterations, Encoding: c.Encoding},
		Output: config.OutputConfig{Format: c.Format, Trace: c.Trace, TraceScale: c.TraceScale},
		Log:    config.LogConfig{Level: c.LogLevel, Format: c.LogFormat},
	}
	return merged.Validate()
}
