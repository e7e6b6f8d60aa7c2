package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"mensajero/internal/config"
	"mensajero/internal/generate"
	"mensajero/internal/gitrepo"
	"mensajero/internal/issue"
	"mensajero/internal/llm"
	"mensajero/internal/message"
)

var (
	optionCount int
	issueNumber int
	skipLang    bool
	autoConfirm bool
)

var generarCmd = &cobra.Command{
	Use:   "generar",
	Short: "Generar un mensaje de commit para los cambios preparados",
	Long: `Lee el diff de los cambios preparados, genera un mensaje de commit en
español y, si lo confirmás, crea el commit.

Con --opciones N genera varias alternativas para elegir. Con --issue N
consulta el issue en GitHub y obliga a referenciarlo en el título.

Ejemplos:
  mensajero generar
  mensajero generar --opciones 3
  mensajero generar --issue 42`,
	Args: cobra.NoArgs,
	RunE: runGenerar,
}

func init() {
	rootCmd.AddCommand(generarCmd)
	generarCmd.Flags().IntVar(&optionCount, "opciones", 0, "Cantidad de mensajes alternativos para elegir")
	generarCmd.Flags().IntVar(&issueNumber, "issue", 0, "Número de issue de GitHub a referenciar en el título")
	generarCmd.Flags().BoolVar(&skipLang, "sin-validar-idioma", false, "No validar que el mensaje esté en español")
	generarCmd.Flags().BoolVar(&autoConfirm, "si", false, "Commitear sin pedir confirmación")
}

func runGenerar(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	repo, err := gitrepo.Open(".")
	if err != nil {
		return err
	}

	diff, err := repo.StagedDiff()
	if err != nil {
		return err
	}
	if diff == "" {
		fmt.Println("No hay cambios preparados. Usá 'git add' y volvé a intentar.")
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	client, err := buildClient(cfg)
	if err != nil {
		return err
	}

	pipelineCfg := pipelineConfig(cfg)
	if issueNumber > 0 {
		pipelineCfg.ExtraContext = issueContext(ctx, repo, issueNumber)
	}
	pipeline := generate.NewPipeline(client, pipelineCfg)

	// The selection loop restarts from a diff re-read when the user asks
	// to regenerate.
	for {
		chosen, regenerate, err := generateAndChoose(ctx, pipeline, diff)
		if err != nil {
			return err
		}
		if regenerate {
			diff, err = repo.StagedDiff()
			if err != nil {
				return err
			}
			if diff == "" {
				fmt.Println("Los cambios preparados desaparecieron, no hay nada que commitear.")
				return nil
			}
			continue
		}
		if chosen == nil {
			fmt.Println("Commit cancelado.")
			return nil
		}

		hash, err := repo.Commit(chosen.Full())
		if err != nil {
			return err
		}
		fmt.Printf("✓ Commit creado: %s\n", shortHash(hash))
		return nil
	}
}

func buildClient(cfg config.Config) (llm.Client, error) {
	key, err := config.LoadKey()
	if err != nil {
		return nil, err
	}

	return llm.NewOpenAIClient(llm.Config{
		Model:       cfg.Model,
		Temperature: float32(cfg.Temperature),
		MaxTokens:   cfg.MaxResponseTokens,
		APIKey:      key,
		Timeout:     cfg.TimeoutSeconds,
	})
}

func pipelineConfig(cfg config.Config) generate.Config {
	return generate.Config{
		ChunkThreshold:    cfg.ChunkThreshold,
		MaxTokensPerChunk: cfg.MaxTokensPerChunk,
		OverlapLines:      cfg.OverlapLines,
		MaxAttempts:       cfg.MaxAttempts,
		LanguageAttempts:  cfg.LanguageAttempts,
		EnforceLanguage:   cfg.EnforceLanguage && !skipLang,
		CallDelay:         time.Duration(cfg.CallDelaySeconds) * time.Second,
	}
}

// issueContext fetches the issue and renders the prompt instruction.
// Fetch failures degrade to a warning; generation continues without the
// reference requirement.
func issueContext(ctx context.Context, repo *gitrepo.Repository, number int) string {
	owner, name, err := repo.OriginOwnerRepo()
	if err != nil {
		color.New(color.FgYellow).Fprintf(os.Stderr, "Aviso: no se pudo resolver el remoto origin: %v\n", err)
		return ""
	}

	ref, err := issue.Fetch(ctx, owner, name, number, os.Getenv("GITHUB_TOKEN"))
	if err != nil {
		color.New(color.FgYellow).Fprintf(os.Stderr, "Aviso: %v\n", err)
		return ""
	}
	return ref.PromptInstruction()
}

// generateAndChoose runs the pipeline and resolves the user's choice.
// Returns (message, false, nil) to commit, (nil, true, nil) to regenerate,
// (nil, false, nil) to cancel.
func generateAndChoose(ctx context.Context, pipeline *generate.Pipeline, diff string) (*message.CommitMessage, bool, error) {
	s := newSpinner()
	s.Start()

	if optionCount > 1 {
		options, err := pipeline.RunOptions(ctx, diff, optionCount)
		s.Stop()
		if err != nil {
			return nil, false, err
		}
		return chooseOption(options)
	}

	msg, err := pipeline.Run(ctx, diff)
	s.Stop()
	if err != nil {
		return nil, false, err
	}
	return confirmMessage(msg)
}

func newSpinner() *spinner.Spinner {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " Generando mensaje de commit..."
	return s
}

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F780FF")).Bold(true)
	bodyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#E9E9F4"))
	numberStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF79C6"))
)

func printMessage(msg message.CommitMessage) {
	fmt.Println(titleStyle.Render(msg.Title))
	if msg.Body != "" {
		fmt.Println()
		fmt.Println(bodyStyle.Render(msg.Body))
	}
}

// confirmMessage shows the generated message and asks to commit, regenerate
// or cancel. Non-interactive sessions accept automatically.
func confirmMessage(msg message.CommitMessage) (*message.CommitMessage, bool, error) {
	fmt.Println()
	printMessage(msg)
	fmt.Println()

	if autoConfirm || !term.IsTerminal(int(os.Stdin.Fd())) {
		return &msg, false, nil
	}

	fmt.Print("¿Commitear con este mensaje? [s = sí / r = regenerar / n = cancelar]: ")
	switch readAnswer() {
	case "s", "si", "sí", "y":
		return &msg, false, nil
	case "r":
		return nil, true, nil
	default:
		return nil, false, nil
	}
}

// chooseOption lists the candidates and reads a selection. Non-interactive
// sessions take the first option.
func chooseOption(options []message.CommitMessage) (*message.CommitMessage, bool, error) {
	fmt.Println()
	for i, opt := range options {
		fmt.Printf("%s %s\n", numberStyle.Render(fmt.Sprintf("[%d]", i+1)), titleStyle.Render(opt.Title))
		if opt.Body != "" {
			fmt.Println(bodyStyle.Render(indent(opt.Body, "    ")))
		}
		fmt.Println()
	}

	if autoConfirm || !term.IsTerminal(int(os.Stdin.Fd())) {
		return &options[0], false, nil
	}

	fmt.Printf("Elegí una opción [1-%d, r = regenerar, n = cancelar]: ", len(options))
	answer := readAnswer()
	switch answer {
	case "r":
		return nil, true, nil
	case "n", "q", "":
		return nil, false, nil
	}

	var n int
	if _, err := fmt.Sscanf(answer, "%d", &n); err != nil || n < 1 || n > len(options) {
		fmt.Println("Opción inválida, commit cancelado.")
		return nil, false, nil
	}
	return &options[n-1], false, nil
}

func readAnswer() string {
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(line))
}

func indent(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}
