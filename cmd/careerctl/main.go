// Package main provides the operator CLI for We Will Shine.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"wewillshine/internal/chat"
	"wewillshine/internal/config"
	"wewillshine/internal/database"
	"wewillshine/internal/directory"
	"wewillshine/internal/models"
	"wewillshine/internal/quiz"
	"wewillshine/internal/remote"
	"wewillshine/internal/security"
	"wewillshine/internal/service"
	"wewillshine/internal/storage"
)

var (
	configPath string

	quizName string

	chatSeed int64

	studentsFilter models.StudentFilter
	studentsJSON   bool

	cleanupDryRun bool

	backupPath string

	adminEmail    string
	adminName     string
	adminPassword string
	adminRole     string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "careerctl",
		Short:        "Operator tools for the We Will Shine career app",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "TOML config file (overrides CONFIG_FILE)")

	rootCmd.AddCommand(newResolveCmd())
	rootCmd.AddCommand(newQuizCmd())
	rootCmd.AddCommand(newChatCmd())
	rootCmd.AddCommand(newStudentsCmd())
	rootCmd.AddCommand(newCleanupCmd())
	rootCmd.AddCommand(newCreateAdminCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newImportCmd())

	return rootCmd
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadWithFile()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if configPath != "" {
		if err := cfg.ApplyFile(configPath); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}
	return cfg, nil
}

func openRemote(cfg *config.Config) (remote.Gateway, io.Closer, error) {
	return remote.Open(remote.Options{
		Mode:         cfg.RemoteMode,
		DatabaseType: cfg.DatabaseType,
		DatabaseURL:  cfg.DatabaseURL,
		DatabasePath: cfg.DatabasePath,
		Migrations:   cfg.MigrationsPath,
		URL:          cfg.RemoteURL,
		APIKey:       cfg.RemoteAPIKey,
		Timeout:      cfg.RemoteTimeout,
	})
}

// openDatabase opens the relational remote directly for commands that work
// below the gateway.
func openDatabase(cfg *config.Config, command string) (*database.DB, error) {
	if cfg.RemoteMode != "sql" && cfg.RemoteMode != "" {
		return nil, fmt.Errorf("%s needs the sql remote, got %q", command, cfg.RemoteMode)
	}
	db, err := database.Open(cfg.DatabaseType, cfg.DatabaseURL, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return db, nil
}

func newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve CODE",
		Short: "Look up the student behind an access code",
		Args:  cobra.ExactArgs(1),
		RunE:  runResolveCmd,
	}
}

func runResolveCmd(cmd *cobra.Command, args []string) error {
	identity, err := directory.MustResolve(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", identity.Code, identity.ID, identity.Name)
	return nil
}

func newQuizCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quiz TAG...",
		Short: "Classify quiz answer tags and print the motivation message",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runQuizCmd,
	}
	cmd.Flags().StringVar(&quizName, "name", "Kamu", "student name used in the message")
	return cmd
}

func runQuizCmd(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	scores := quiz.Scores(args)
	for _, t := range quiz.Traits {
		fmt.Fprintf(out, "%-10s %d\n", t, scores[t])
	}
	trait := quiz.Classify(args)
	fmt.Fprintf(out, "\ntrait: %s\n%s\n", trait, quiz.Template(trait, quiz.FirstName(quizName)))
	return nil
}

func newChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat TEXT...",
		Short: "Show how the mentor bot answers a message",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runChatCmd,
	}
	cmd.Flags().Int64Var(&chatSeed, "seed", 0, "random seed for reply selection (0 uses the clock)")
	return cmd
}

func runChatCmd(cmd *cobra.Command, args []string) error {
	var rng *rand.Rand
	if chatSeed != 0 {
		rng = rand.New(rand.NewSource(chatSeed))
	}
	bucket, reply := chat.NewResponder(rng).Respond(strings.Join(args, " "))
	fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s\n", bucket, reply)
	return nil
}

func newStudentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "students",
		Short: "List students in the remote store",
		Args:  cobra.NoArgs,
		RunE:  runStudentsCmd,
	}
	cmd.Flags().StringVar(&studentsFilter.Kelas, "kelas", "", "filter by class")
	cmd.Flags().StringVar(&studentsFilter.Rombel, "rombel", "", "filter by study group")
	cmd.Flags().StringVar(&studentsFilter.Angkatan, "angkatan", "", "filter by cohort year")
	cmd.Flags().StringVar(&studentsFilter.Search, "search", "", "match name or code")
	cmd.Flags().IntVar(&studentsFilter.Limit, "limit", service.DefaultStudentPageSize, "page size")
	cmd.Flags().IntVar(&studentsFilter.Offset, "offset", 0, "rows to skip")
	cmd.Flags().BoolVar(&studentsJSON, "json", false, "print JSON instead of a table")
	return cmd
}

func runStudentsCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	gateway, closer, err := openRemote(cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	admins := service.NewAdminService(gateway, storage.NewMemoryStore(), security.NewTokenSigner(cfg.AdminJWTKey, cfg.AdminTokenTTL))
	page, err := admins.ListStudents(cmd.Context(), studentsFilter)
	if err != nil {
		return err
	}

	if studentsJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(page)
	}
	return writeStudents(cmd.OutOrStdout(), page)
}

func writeStudents(w io.Writer, page *models.StudentPage) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tNAME\tPOINTS\tLEVEL\tKELAS")
	for _, s := range page.Students {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n", s.StudentCode, s.StudentName, s.Points, s.Level, s.Kelas)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d of %d students\n", len(page.Students), page.Total)
	return err
}

func newCleanupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cleanup-duplicates",
		Short: "Merge student rows that share an access code",
		Args:  cobra.NoArgs,
		RunE:  runCleanupCmd,
	}
	cmd.Flags().BoolVar(&cleanupDryRun, "dry-run", false, "print the plan without changing anything")
	return cmd
}

func runCleanupCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openDatabase(cfg, "cleanup-duplicates")
	if err != nil {
		return err
	}
	defer db.Close()

	report, err := service.NewCleanupService(db).Run(cmd.Context(), cleanupDryRun)
	if report != nil {
		writeCleanupReport(cmd.OutOrStdout(), report)
	}
	return err
}

func writeCleanupReport(w io.Writer, report *service.CleanupReport) {
	for _, g := range report.Groups {
		fmt.Fprintf(w, "%s: keep %s (points=%d level=%d), remove %d\n", g.Code, g.Keep.ID, g.Points, g.Level, len(g.Remove))
	}
	verb := "removed"
	if report.DryRun {
		verb = "would remove"
	}
	fmt.Fprintf(w, "%d duplicate codes, %s %d rows\n", len(report.Groups), verb, report.Removed)
}

func newCreateAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account in the remote store",
		Args:  cobra.NoArgs,
		RunE:  runCreateAdminCmd,
	}
	cmd.Flags().StringVar(&adminEmail, "email", "", "admin email")
	cmd.Flags().StringVar(&adminName, "name", "", "display name")
	cmd.Flags().StringVar(&adminPassword, "password", "", "password (falls back to ADMIN_PASSWORD)")
	cmd.Flags().StringVar(&adminRole, "role", "admin", "super_admin, admin or teacher")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func runCreateAdminCmd(cmd *cobra.Command, _ []string) error {
	password := adminPassword
	if password == "" {
		password = os.Getenv("ADMIN_PASSWORD")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	gateway, closer, err := openRemote(cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	admins := service.NewAdminService(gateway, storage.NewMemoryStore(), security.NewTokenSigner(cfg.AdminJWTKey, cfg.AdminTokenTTL))
	admin, err := admins.CreateAdmin(cmd.Context(), adminEmail, adminName, password, adminRole)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "created %s admin %s (%s)\n", admin.Role, admin.Email, admin.ID)
	return nil
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a JSON backup of every student record",
		Args:  cobra.NoArgs,
		RunE:  runExportCmd,
	}
	cmd.Flags().StringVarP(&backupPath, "output", "o", "", "output file (default: stdout)")
	return cmd
}

func runExportCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openDatabase(cfg, "export")
	if err != nil {
		return err
	}
	defer db.Close()

	w := cmd.OutOrStdout()
	if backupPath != "" {
		f, err := os.Create(backupPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}
	_, err = service.NewBackupService(db).Export(cmd.Context(), w)
	return err
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Restore student records from a JSON backup",
		Args:  cobra.ExactArgs(1),
		RunE:  runImportCmd,
	}
}

func runImportCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openDatabase(cfg, "import")
	if err != nil {
		return err
	}
	defer db.Close()

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	n, err := service.NewBackupService(db).Import(cmd.Context(), f)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "restored %d students\n", n)
	return nil
}
