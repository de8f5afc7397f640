package cmd

import (
	"fmt"

	"github.com/PetA199003/GBU-Management/internal/model"
	"github.com/PetA199003/GBU-Management/internal/seed"

	"github.com/spf13/cobra"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Standarddaten anlegen (Benutzer, Bereiche, Katalog)",
		Long: `Legt fehlende Standarddaten an. Bereits vorhandene Einträge bleiben
unverändert, der Befehl kann beliebig oft ausgeführt werden.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer e.close()

			if err := model.Migrate(e.db); err != nil {
				return fmt.Errorf("数据库迁移失败: %w", err)
			}
			res, err := seed.Run(cmd.Context(), e.db)
			if err != nil {
				return fmt.Errorf("写入默认数据失败: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d Einträge angelegt\n", res.Total())
			return nil
		},
	}
}
