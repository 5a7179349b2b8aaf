package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"strconv"
	"syscall"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/twolink/internal/arm"
	"github.com/san-kum/twolink/internal/config"
	"github.com/san-kum/twolink/internal/export"
	"github.com/san-kum/twolink/internal/kinematics"
	"github.com/san-kum/twolink/internal/server"
	"github.com/san-kum/twolink/internal/sweep"
	"github.com/san-kum/twolink/internal/version"
	"github.com/san-kum/twolink/internal/viz"
)

var (
	configFile string
	preset     string
	l1         float64
	l2         float64
	elbowDown  bool
	svgFile    string
	pngFile    string
	ticks      int
	addr       string
	staticDir  string
	force      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "twolink",
		Short:   "interactive 2-link planar arm lab",
		Version: version.String(),
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return viz.Run(cfg)
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().Float64Var(&l1, "l1", config.DefaultL1, "length of link 1")
	rootCmd.PersistentFlags().Float64Var(&l2, "l2", config.DefaultL2, "length of link 2")

	fkCmd := &cobra.Command{
		Use:   "fk [theta1] [theta2]",
		Short: "forward kinematics (angles in degrees)",
		Args:  cobra.ExactArgs(2),
		RunE:  runForward,
	}
	fkCmd.Flags().StringVar(&svgFile, "svg", "", "write the pose as svg")

	ikCmd := &cobra.Command{
		Use:   "ik [x] [y]",
		Short: "inverse kinematics for a target relative to the base",
		Args:  cobra.ExactArgs(2),
		RunE:  runInverse,
	}
	ikCmd.Flags().BoolVar(&elbowDown, "elbow-down", false, "use the elbow-down branch")
	ikCmd.Flags().StringVar(&svgFile, "svg", "", "write the pose as svg")

	sweepCmd := &cobra.Command{
		Use:   "sweep [path]",
		Short: "drive the arm along a scripted path (circle, line, figure8, spiral, all)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().IntVar(&ticks, "ticks", 200, "number of ticks")
	sweepCmd.Flags().StringVar(&pngFile, "png", "", "write joint angle traces as png")
	sweepCmd.Flags().StringVar(&svgFile, "svg", "", "write the end-effector path as svg")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the browser front end and kinematics api",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&addr, "addr", config.DefaultAddr, "listen address")
	serveCmd.Flags().StringVar(&staticDir, "dir", "", "serve static files from this directory instead of the embedded ones")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage config files",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the effective configuration to a yaml file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	configInitCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(fkCmd, ikCmd, sweepCmd, serveCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig applies, in order: defaults, preset, config file, then any
// explicitly set length flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p, err := config.MustPreset(preset)
		if err != nil {
			return nil, err
		}
		cfg = p
	}

	if configFile != "" {
		c, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
	}

	if cmd.Flags().Changed("l1") {
		cfg.L1 = l1
	}
	if cmd.Flags().Changed("l2") {
		cfg.L2 = l2
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseFloats(args []string) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", a)
		}
		out[i] = v
	}
	return out, nil
}

func runForward(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	v, err := parseFloats(args)
	if err != nil {
		return err
	}
	t1, t2 := kinematics.Radians(v[0]), kinematics.Radians(v[1])
	pose := kinematics.Forward(t1, t2, cfg.L1, cfg.L2)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "L1\t%g\n", cfg.L1)
	fmt.Fprintf(w, "L2\t%g\n", cfg.L2)
	fmt.Fprintf(w, "θ1\t%.1f°\n", v[0])
	fmt.Fprintf(w, "θ2\t%.1f°\n", v[1])
	fmt.Fprintf(w, "elbow\t(%.1f, %.1f)\n", pose.Elbow.X, pose.Elbow.Y)
	fmt.Fprintf(w, "end-effector\t(%.1f, %.1f)\n", pose.EndEffector.X, pose.EndEffector.Y)
	if err := w.Flush(); err != nil {
		return err
	}

	if svgFile == "" {
		return nil
	}
	cfg.Mode = arm.ModeForward.String()
	cfg.Theta1, cfg.Theta2 = v[0], v[1]
	a, err := newArm(cfg)
	if err != nil {
		return err
	}
	a.Update(r2.Vec{}, false)
	return writeFile(svgFile, export.ArmToSVG(a.Snapshot()))
}

func runInverse(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	v, err := parseFloats(args)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("elbow-down") {
		cfg.ElbowUp = !elbowDown
	}

	sol := kinematics.Inverse(v[0], v[1], cfg.L1, cfg.L2, cfg.ElbowUp)
	pose := kinematics.Forward(sol.Theta1, sol.Theta2, cfg.L1, cfg.L2)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "target\t(%.1f, %.1f)\n", v[0], v[1])
	fmt.Fprintf(w, "elbow\t%s\n", map[bool]string{true: "up", false: "down"}[cfg.ElbowUp])
	fmt.Fprintf(w, "θ1\t%.1f°\n", kinematics.Degrees(sol.Theta1))
	fmt.Fprintf(w, "θ2\t%.1f°\n", kinematics.Degrees(sol.Theta2))
	fmt.Fprintf(w, "clamp\t%s\n", sol.Clamp)
	if sol.Clamped() {
		fmt.Fprintf(w, "reached\t(%.1f, %.1f)\n", sol.Target.X, sol.Target.Y)
	}
	fmt.Fprintf(w, "end-effector\t(%.1f, %.1f)\n", pose.EndEffector.X, pose.EndEffector.Y)
	if err := w.Flush(); err != nil {
		return err
	}

	if svgFile == "" {
		return nil
	}
	cfg.Mode = arm.ModeInverse.String()
	a, err := newArm(cfg)
	if err != nil {
		return err
	}
	a.Update(a.Frame().MathToScreen(r2.Vec{X: v[0], Y: v[1]}), false)
	return writeFile(svgFile, export.ArmToSVG(a.Snapshot()))
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	name := "circle"
	if len(args) == 1 {
		name = args[0]
	}
	names := []string{name}
	if name == "all" {
		names = sweep.PathNames()
	}

	armCfg, err := cfg.ArmConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results, runErr := sweep.RunAll(ctx, armCfg, names, ticks)
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	results = slices.DeleteFunc(results, func(r *sweep.Result) bool { return r == nil || r.Ticks == 0 })
	if len(results) == 0 {
		return runErr
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PATH\tTICKS\tTRACKING\tCLAMPED\tJOINT TRAVEL\tPATH LENGTH\tERRORS")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%d\t%.2f\t%.0f%%\t%.2f rad\t%.1f\t%d\n",
			r.Path, r.Ticks,
			r.Metrics["tracking_error"],
			100*r.Metrics["clamp_rate"],
			r.Metrics["joint_travel"],
			r.Metrics["path_length"],
			len(r.Errors))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	for _, r := range results {
		for _, e := range r.Errors {
			fmt.Fprintf(os.Stderr, "%s: %v\n", r.Path, e)
		}
		fmt.Println()
		fmt.Println(asciigraph.PlotMany([][]float64{degrees(r.Theta1), degrees(r.Theta2)},
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.SeriesColors(asciigraph.Magenta, asciigraph.Cyan),
			asciigraph.Caption(r.Path+": θ1, θ2 (deg)"),
		))
	}

	if runErr != nil {
		return fmt.Errorf("sweep interrupted: %w", runErr)
	}

	if pngFile != "" {
		if err := plotAngles(pngFile, results); err != nil {
			return err
		}
		fmt.Printf("\nwrote %s\n", pngFile)
	}
	if svgFile != "" {
		if len(results) > 1 {
			return errors.New("--svg needs a single path")
		}
		if err := writeFile(svgFile, export.TrajectoryToSVG(results[0].EndEffector, 600, 600, "#ffc864")); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgFile)
	}
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("addr") {
		addr = cfg.Server.Addr
	}
	if !cmd.Flags().Changed("dir") {
		staticDir = cfg.Server.StaticDir
	}

	srv, err := server.New(server.Config{
		Addr:      addr,
		StaticDir: staticDir,
		L1:        cfg.L1,
		L2:        cfg.L2,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Run(ctx)
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tL1\tL2\tMODE\tθ1\tθ2\tELBOW\tTRAIL")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%g\t%g\t%s\t%g°\t%g°\t%s\t%d\n",
			name, p.L1, p.L2, p.Mode, p.Theta1, p.Theta2,
			map[bool]string{true: "up", false: "down"}[p.ElbowUp], p.Trail.Max)
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	path := "twolink.yaml"
	if len(args) == 1 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func newArm(cfg *config.Config) (*arm.Arm, error) {
	armCfg, err := cfg.ArmConfig()
	if err != nil {
		return nil, err
	}
	return arm.New(armCfg)
}

func degrees(rad []float64) []float64 {
	out := make([]float64, len(rad))
	for i, r := range rad {
		out[i] = kinematics.Degrees(r)
	}
	return out
}

func writeFile(path, data string) error {
	if data == "" {
		return fmt.Errorf("nothing to write to %s", path)
	}
	return os.WriteFile(path, []byte(data), 0644)
}
