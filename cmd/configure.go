package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"mensajero/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Administrar la configuración y la clave de API",
}

var setKeyCmd = &cobra.Command{
	Use:   "set-key [clave]",
	Short: "Guardar la clave de API en el archivo local de credenciales",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.SaveKey(args[0]); err != nil {
			return err
		}
		dir, err := config.Dir()
		if err != nil {
			return err
		}
		fmt.Printf("✓ Clave guardada en %s\n", dir)
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Mostrar la configuración efectiva",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		key, err := config.LoadKey()
		if err != nil {
			return err
		}
		keyStatus := "no configurada"
		if key != "" {
			keyStatus = "configurada"
		}

		fmt.Printf("Modelo:                  %s\n", cfg.Model)
		fmt.Printf("Temperatura:             %.2f\n", cfg.Temperature)
		fmt.Printf("Umbral de segmentación:  %d tokens\n", cfg.ChunkThreshold)
		fmt.Printf("Tokens por segmento:     %d\n", cfg.MaxTokensPerChunk)
		fmt.Printf("Líneas de solapamiento:  %d\n", cfg.OverlapLines)
		fmt.Printf("Intentos (simple):       %d\n", cfg.MaxAttempts)
		fmt.Printf("Intentos (con idioma):   %d\n", cfg.LanguageAttempts)
		fmt.Printf("Validación de idioma:    %t\n", cfg.EnforceLanguage)
		fmt.Printf("Clave de API:            %s\n", keyStatus)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(setKeyCmd)
	configCmd.AddCommand(showCmd)
}
