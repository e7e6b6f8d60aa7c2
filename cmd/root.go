package cmd

import (
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mensajero",
	Short: "Mensajero - Mensajes de commit en español generados por IA",
	Long: `Mensajero genera mensajes de commit en español a partir de los cambios
preparados (staged) del repositorio.

Lee el diff preparado, lo analiza con un modelo de lenguaje (por segmentos
cuando el diff es muy grande) y propone un mensaje con formato convencional
(tipo: descripción) validado contra reglas de formato e idioma.`,
}

// Execute runs the root command
func Execute() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
