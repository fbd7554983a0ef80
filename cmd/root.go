package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gianmaria/reddit-image-downloader/internal/scraper"
)

var (
	concurrency int
	rateLimitMs int
	userAgent   string
	minUpvotes  int
	verbose     bool
)

var validWhen = map[string]bool{
	"hour": true, "day": true, "week": true,
	"month": true, "year": true, "all": true,
}

// rootCmd is the program itself: rid <subreddit> <when> <dest-folder>.
var rootCmd = &cobra.Command{
	Use:   "rid [subreddit] [when] [dest-folder]",
	Short: "Reddit Image Downloader",
	Long: `Reddit Image Downloader
Downloads all the top media from a specified subreddit:
- direct image links, imgur galleries, gfycat and reddit-hosted video
- resumes across restarts via a pagination checkpoint
- skips files that were already downloaded

Arguments:
  subreddit    subreddit name, without the /r prefix (e.g. VaporwaveAesthetics)
  when         one of: hour | day | week | month | year | all
  dest-folder  where the files go (created if it doesn't exist)`,
	Args:          cobra.ExactArgs(3),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

// Execute runs the CLI; any error exits non-zero.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().IntVarP(&concurrency, "concurrency", "c", 10, "maximum concurrent downloads per page batch")
	rootCmd.Flags().IntVar(&rateLimitMs, "rate-limit", 100, "delay between requests in milliseconds")
	rootCmd.Flags().StringVar(&userAgent, "user-agent", "", "custom user agent (default: random)")
	rootCmd.Flags().IntVar(&minUpvotes, "min-upvotes", 0, "skip posts with fewer upvotes")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	viper.BindPFlag("concurrency", rootCmd.Flags().Lookup("concurrency"))
	viper.BindPFlag("rate-limit", rootCmd.Flags().Lookup("rate-limit"))
	viper.BindPFlag("user-agent", rootCmd.Flags().Lookup("user-agent"))
	viper.BindPFlag("min-upvotes", rootCmd.Flags().Lookup("min-upvotes"))
	viper.BindPFlag("verbose", rootCmd.Flags().Lookup("verbose"))
	viper.AutomaticEnv()
}

func runRoot(cmd *cobra.Command, args []string) error {
	subreddit, when, destDir := args[0], args[1], args[2]

	if !validWhen[when] {
		return fmt.Errorf("invalid value %q for when, choose between: hour | day | week | month | year | all", when)
	}

	level := slog.LevelInfo
	if viper.GetBool("verbose") {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	s := scraper.New(scraper.Config{
		Subreddit:     subreddit,
		When:          when,
		DestDir:       destDir,
		Concurrency:   viper.GetInt("concurrency"),
		RateLimitMs:   viper.GetInt("rate-limit"),
		UserAgent:     viper.GetString("user-agent"),
		MinUpvotes:    viper.GetInt("min-upvotes"),
		ImgurClientID: os.Getenv("IMGUR_CLIENT_ID"),
	}, logger)

	return s.Run(cmd.Context())
}
