package cmd

import (
	"fmt"

	"github.com/PetA199003/GBU-Management/internal/model"

	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Datenbanktabellen anlegen oder aktualisieren",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer e.close()

			if err := model.Migrate(e.db); err != nil {
				return fmt.Errorf("数据库迁移失败: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Migration abgeschlossen")
			return nil
		},
	}
}
