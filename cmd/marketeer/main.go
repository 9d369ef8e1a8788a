package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"marketeer/internal/agent"
	"marketeer/internal/blueprint"
	"marketeer/internal/chat"
	"marketeer/internal/config"
	"marketeer/internal/copywriter"
	"marketeer/internal/llm"
	"marketeer/internal/platform"
	"marketeer/internal/server"
	"marketeer/internal/types"
	"marketeer/internal/videoscript"
)

var rootCmd = &cobra.Command{
	Use:   "marketeer",
	Short: "Marketeer CLI",
	Long: `Marketeer turns a structured campaign request into platform-ready
copy or a timed multi-beat video script, using an LLM backend and a
validation layer that enforces platform constraints.`,
	SilenceUsage: true,
}

func main() {
	// Local dev only; deployments use real environment variables.
	_ = godotenv.Load()

	cobra.OnInitialize(initEnv)
	addPersistentFlags()
	registerCommands()
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}

func initEnv() {
	viper.SetEnvPrefix("MARKETEER")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func addPersistentFlags() {
	rootCmd.PersistentFlags().String("config", "marketeer.yml", "config file path")
	rootCmd.PersistentFlags().Bool("json", false, "output JSON")
	rootCmd.PersistentFlags().String("out", "", "directory to save run artifacts (optional)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	_ = viper.BindPFlag("out", rootCmd.PersistentFlags().Lookup("out"))
}

// loadConfig reads the config file and applies any table overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(viper.GetString("config"))
	if err != nil {
		return nil, err
	}
	if cfg.Tables.Platforms != "" {
		if err := platform.LoadTable(cfg.Tables.Platforms); err != nil {
			return nil, err
		}
	}
	if cfg.Tables.Blueprints != "" {
		if err := blueprint.LoadTable(cfg.Tables.Blueprints); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func newBackend(cfg *config.Config) *llm.Client {
	return llm.NewClient(cfg.LLM.BaseURL, cfg.LLM.Model, viper.GetString("api-key"), cfg.LLM.Timeout())
}

func addCampaignFlags(cmd *cobra.Command) {
	cmd.Flags().String("brand", "", "brand name")
	cmd.Flags().String("product", "", "product or offer")
	cmd.Flags().String("audience", "", "target audience")
	cmd.Flags().String("goal", "", "campaign goal")
	cmd.Flags().String("platform", platform.DefaultName, "target platform")
	cmd.Flags().String("tone", "friendly", "requested tone")
	cmd.Flags().String("cta", "soft", "call-to-action style")
	cmd.Flags().String("extra", "", "free-text extra context")
}

func campaignFromFlags(cmd *cobra.Command) types.CampaignRequest {
	get := func(name string) string {
		v, _ := cmd.Flags().GetString(name)
		return v
	}
	return types.CampaignRequest{
		Brand:        get("brand"),
		Product:      get("product"),
		Audience:     get("audience"),
		Goal:         get("goal"),
		PlatformName: get("platform"),
		Tone:         get("tone"),
		CTAStyle:     get("cta"),
		ExtraContext: get("extra"),
	}
}

func registerCommands() {
	rootCmd.AddCommand(newCopyCmd())
	rootCmd.AddCommand(newVideoCmd())
	rootCmd.AddCommand(newChatCmd())
	rootCmd.AddCommand(newPlatformsCmd())
	rootCmd.AddCommand(newBlueprintsCmd())
	rootCmd.AddCommand(newServeCmd())
}

func newCopyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "copy",
		Short: "Generate a single platform post",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			req := campaignFromFlags(cmd)
			writer := copywriter.New(newBackend(cfg), cfg.Copy.Params())

			resp, err := writer.Run(context.Background(), req)
			if err != nil {
				return err
			}
			saveArtifact("copy.json", resp)
			if viper.GetBool("json") {
				return printJSON(resp)
			}
			renderCopy(resp)
			return nil
		},
	}
	addCampaignFlags(cmd)
	return cmd
}

func newVideoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "video",
		Short: "Generate a timed multi-beat video script",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			base := campaignFromFlags(cmd)
			bpName, _ := cmd.Flags().GetString("blueprint")
			duration, _ := cmd.Flags().GetInt("duration")
			style, _ := cmd.Flags().GetString("style")
			debugFirst, _ := cmd.Flags().GetBool("debug-first")

			req := types.VideoRequest{
				Brand:         base.Brand,
				Product:       base.Product,
				Audience:      base.Audience,
				Goal:          base.Goal,
				BlueprintName: bpName,
				DurationSec:   duration,
				PlatformName:  base.PlatformName,
				Style:         style,
				ExtraContext:  base.ExtraContext,
			}

			scripter := videoscript.New(newBackend(cfg), cfg.Video.Params())
			scripter.SetDebugFirst(debugFirst)

			resp, err := scripter.Run(context.Background(), req)
			if err != nil {
				return err
			}
			saveArtifact("video.json", resp)
			if viper.GetBool("json") {
				return printJSON(resp)
			}
			renderVideo(resp)
			return nil
		},
	}
	addCampaignFlags(cmd)
	cmd.Flags().String("blueprint", blueprint.DefaultName, "video blueprint")
	cmd.Flags().Int("duration", 20, "total duration in seconds")
	cmd.Flags().String("style", "warm and energetic", "overall video style")
	cmd.Flags().Bool("debug-first", false, "log the raw first-beat response")
	return cmd
}

func newChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Run one chat refinement turn",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			req := campaignFromFlags(cmd)
			message, _ := cmd.Flags().GetString("message")
			useAgent, _ := cmd.Flags().GetBool("agent")
			backend := newBackend(cfg)

			if useAgent {
				runner := agent.New(backend, cfg.Chat.Params())
				final, raw, trace, err := runner.RunTurn(context.Background(), req, message, nil)
				if err != nil {
					return err
				}
				saveArtifact("chat.json", map[string]any{"final": final, "raw": raw, "tools": trace})
				if viper.GetBool("json") {
					return printJSON(map[string]any{"final": final, "raw": raw, "tools": trace})
				}
				renderChat(final, trace, nil)
				return nil
			}

			turner := chat.New(backend, cfg.Chat.Params())
			final, raw, audit, err := turner.Run(context.Background(), req, message, nil)
			if err != nil {
				return err
			}
			saveArtifact("chat.json", map[string]any{"final": final, "raw": raw, "audit": audit})
			if viper.GetBool("json") {
				return printJSON(map[string]any{"final": final, "raw": raw, "audit": audit})
			}
			renderChat(final, nil, audit)
			return nil
		},
	}
	addCampaignFlags(cmd)
	cmd.Flags().String("message", "", "user message for this turn")
	cmd.Flags().Bool("agent", false, "use the tool-calling agent")
	_ = cmd.MarkFlagRequired("message")
	return cmd
}

func newPlatformsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "platforms",
		Short: "List platform profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadConfig(); err != nil {
				return err
			}
			if viper.GetBool("json") {
				var out []platform.Profile
				for _, name := range platform.Names() {
					out = append(out, platform.Resolve(name))
				}
				return printJSON(out)
			}
			renderPlatforms()
			return nil
		},
	}
}

func newBlueprintsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "blueprints",
		Short: "List video blueprints",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadConfig(); err != nil {
				return err
			}
			if viper.GetBool("json") {
				var out []blueprint.Blueprint
				for _, name := range blueprint.Names() {
					out = append(out, blueprint.Get(name))
				}
				return printJSON(out)
			}
			renderBlueprints()
			return nil
		},
	}
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the generation API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
				cfg.Server.Addr = addr
			}
			backend := newBackend(cfg)

			handler := server.New(server.Config{
				Copy:     copywriter.New(backend, cfg.Copy.Params()),
				Chat:     chat.New(backend, cfg.Chat.Params()),
				Agent:    agent.New(backend, cfg.Chat.Params()),
				Video:    videoscript.New(backend, cfg.Video.Params()),
				BasePath: cfg.Server.BasePath,
			})

			log.Printf("[serve] Listening on %s", cfg.Server.Addr)
			return http.ListenAndServe(cfg.Server.Addr, handler)
		},
	}
	cmd.Flags().String("addr", "", "listen address (overrides config)")
	return cmd
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// saveArtifact writes one response under a fresh run directory when --out
// is set. Failures are logged, never fatal.
func saveArtifact(name string, v any) {
	outDir := viper.GetString("out")
	if outDir == "" {
		return
	}
	runDir := filepath.Join(outDir, uuid.NewString()[:8])
	if err := os.MkdirAll(runDir, 0755); err != nil {
		log.Printf("Warning: could not create run dir %s: %v", runDir, err)
		return
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Printf("Warning: could not marshal %s: %v", name, err)
		return
	}
	path := filepath.Join(runDir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		log.Printf("Warning: could not save %s: %v", path, err)
		return
	}
	log.Printf("[run] Saved %s", path)
}
