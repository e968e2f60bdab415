package main

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/komsit37/zakat/pkg/zakat/fetch"
	"github.com/komsit37/zakat/pkg/zakat/pipeline"
	"github.com/komsit37/zakat/pkg/zakat/render"
	"github.com/komsit37/zakat/pkg/zakat/source"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "zakat <portfolio.yaml|dir>",
		Short: "Compute zakaatable percentages for portfolio holdings",
		Long: `zakat fetches balance sheets and market data for every holding of the
given portfolio files, computes per-company zakaatable percentages under
the strict, broad and assets-only methodologies, and aggregates them into
fund-level percentages. Results are printed as a table and persisted as
JSON documents (plus HTML pages where a template exists).`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			// flags beat env (ZAKAT_*) beat .env
			_ = godotenv.Load()
			viper.SetEnvPrefix("ZAKAT")
			viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
			viper.AutomaticEnv()
			if err := viper.BindPFlags(cmd.Flags()); err != nil {
				return err
			}

			svc := fetch.New(fetch.Options{
				CacheDir: viper.GetString("cache"),
				Offline:  viper.GetBool("offline"),
				FxURL:    viper.GetString("fx-url"),
				Delay:    viper.GetDuration("delay"),
			})
			runner := &pipeline.Runner{
				Source:   source.YAMLSource{},
				Fetcher:  svc,
				Renderer: render.NewTableRenderer(),
				Writer:   os.Stdout,
			}
			return runner.Execute(cmd.Context(), args[0], pipeline.ExecuteOptions{
				Only:            viper.GetString("only"),
				DisplayCurrency: viper.GetString("display-currency"),
				OutDir:          viper.GetString("out"),
				TemplateDir:     viper.GetString("templates"),
				NoHTML:          viper.GetBool("no-html"),
				Color:           !viper.GetBool("no-color"),
				MaxColWidth:     viper.GetInt("max-col-width"),
				TableWidth:      detectTerminalWidth(),
			})
		},
	}

	defaultCache := ""
	if dir, err := os.UserCacheDir(); err == nil {
		defaultCache = dir + string(os.PathSeparator) + "zakat"
	}

	f := rootCmd.Flags()
	f.String("out", "data", "directory for JSON/HTML output")
	f.String("templates", ".", "directory holding <portfolio>_template.html files")
	f.String("cache", defaultCache, "HTTP response cache directory")
	f.String("display-currency", "GBP", "currency for per-share display prices")
	f.Duration("delay", 1500*time.Millisecond, "politeness delay between ticker fetches")
	f.String("fx-url", fetch.DefaultFxURL, "FX rate endpoint (rates per 1 USD)")
	f.String("only", "", "compute only portfolios whose name contains this")
	f.Bool("offline", false, "use cached HTTP responses only")
	f.Bool("no-html", false, "skip HTML page generation")
	f.Bool("no-color", false, "disable colored output")
	f.Int("max-col-width", 40, "maximum name column width")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
