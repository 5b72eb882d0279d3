package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"navident-console/internal/console"
	"navident-console/internal/domain/entity"
	"navident-console/internal/service"
)

// draftForm is the uniform handle the commands use to drive an entity form:
// textual field assignment, then submit-time validation.
type draftForm[T any] struct {
	set    func(field, value string) error
	submit func() (*T, bool)
	errors func() map[string]string
}

// entitySpec describes one entity's command group. The list/search/create/
// update/delete verbs are identical across entities; everything specific
// lives here.
type entitySpec[T any] struct {
	use     string
	label   string
	plural  string
	svc     *service.CRUD[T]
	id      func(*T) string
	headers []string
	row     func(T) []string
	form    func(ctx context.Context, existing *T) *draftForm[T]
}

func newListScreen[T any](a *App, ctx context.Context, spec *entitySpec[T], req entity.PageRequest, yes bool) *console.List[T] {
	return console.NewList(ctx, spec.label, spec.plural, spec.svc, spec.id,
		&notifier{out: a.Out},
		&prompter{in: a.In, out: a.Out, auto: yes},
		a.Log, req)
}

func (a *App) pageDefaults() entity.PageRequest {
	return entity.PageRequest{
		Page:    0,
		Size:    a.Config.List.PageSize,
		SortBy:  a.Config.List.SortBy,
		SortDir: a.Config.List.SortDir,
	}
}

func entityCommands[T any](a *App, spec *entitySpec[T], extras ...*cobra.Command) *cobra.Command {
	group := &cobra.Command{
		Use:   spec.use,
		Short: "Manage " + spec.plural,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.requireSession()
		},
	}

	group.AddCommand(listCmd(a, spec))
	group.AddCommand(getCmd(a, spec))
	group.AddCommand(searchCmd(a, spec))
	group.AddCommand(createCmd(a, spec))
	group.AddCommand(updateCmd(a, spec))
	group.AddCommand(deleteCmd(a, spec))
	group.AddCommand(extras...)
	return group
}

func listCmd[T any](a *App, spec *entitySpec[T]) *cobra.Command {
	var page, size int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List " + spec.plural,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := a.pageDefaults()
			if page > 0 {
				req.Page = page
			}
			if size > 0 {
				req.Size = size
			}

			screen := newListScreen(a, cmd.Context(), spec, req, false)
			defer screen.Close()

			screen.Open()
			if screen.LastError() != nil {
				return screen.LastError()
			}
			renderRows(a, spec, screen.Items())
			fmt.Fprintf(a.Out, "total: %d (%d pages)\n", screen.TotalElements(), screen.TotalPages())
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 0, "page number (0-based)")
	cmd.Flags().IntVar(&size, "size", 0, "page size")
	return cmd
}

func getCmd[T any](a *App, spec *entitySpec[T]) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one " + spec.label,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			record, err := spec.svc.GetByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(record, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(a.Out, string(data))
			return nil
		},
	}
}

func searchCmd[T any](a *App, spec *entitySpec[T]) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search " + spec.plural,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			screen := newListScreen(a, cmd.Context(), spec, a.pageDefaults(), false)
			defer screen.Close()

			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			screen.Search(query)
			if screen.LastError() != nil {
				return screen.LastError()
			}
			renderRows(a, spec, screen.Items())
			return nil
		},
	}
}

func createCmd[T any](a *App, spec *entitySpec[T]) *cobra.Command {
	var sets []string
	var file string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a " + spec.label,
		RunE: func(cmd *cobra.Command, args []string) error {
			screen := newListScreen(a, cmd.Context(), spec, a.pageDefaults(), false)
			defer screen.Close()
			screen.Add()

			form := spec.form(cmd.Context(), nil)
			if err := applyInput(form, file, sets); err != nil {
				return err
			}

			record, ok := form.submit()
			if !ok {
				renderFieldErrors(a.Out, form.errors())
				return fmt.Errorf("validation failed")
			}
			if !screen.Save(record) {
				return fmt.Errorf("save failed")
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&sets, "set", nil, "field=value (repeatable)")
	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON draft file")
	return cmd
}

func updateCmd[T any](a *App, spec *entitySpec[T]) *cobra.Command {
	var sets []string
	var file string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a " + spec.label,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			existing, err := spec.svc.GetByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			screen := newListScreen(a, cmd.Context(), spec, a.pageDefaults(), false)
			defer screen.Close()
			screen.Edit(*existing)

			form := spec.form(cmd.Context(), existing)
			if err := applyInput(form, file, sets); err != nil {
				return err
			}

			record, ok := form.submit()
			if !ok {
				renderFieldErrors(a.Out, form.errors())
				return fmt.Errorf("validation failed")
			}
			if !screen.Save(record) {
				return fmt.Errorf("save failed")
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&sets, "set", nil, "field=value (repeatable)")
	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON draft file")
	return cmd
}

func deleteCmd[T any](a *App, spec *entitySpec[T]) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a " + spec.label,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			record, err := spec.svc.GetByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			screen := newListScreen(a, cmd.Context(), spec, a.pageDefaults(), yes)
			defer screen.Close()
			screen.Delete(*record)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func renderRows[T any](a *App, spec *entitySpec[T], items []T) {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, spec.row(item))
	}
	renderTable(a.Out, spec.headers, rows)
}

// applyInput feeds a JSON draft file and --set pairs through the form so CLI
// input gets the same submit-time validation the interactive screens do.
func applyInput[T any](form *draftForm[T], file string, sets []string) error {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return err
		}
		var fields map[string]any
		if err := json.Unmarshal(data, &fields); err != nil {
			return fmt.Errorf("invalid draft file: %w", err)
		}
		for field, value := range flatten("", fields) {
			if err := form.set(field, value); err != nil {
				return err
			}
		}
	}

	for _, pair := range sets {
		field, value, found := strings.Cut(pair, "=")
		if !found {
			return fmt.Errorf("invalid --set %q, want field=value", pair)
		}
		if err := form.set(field, value); err != nil {
			return err
		}
	}
	return nil
}

// flatten turns a decoded JSON object into field=value pairs, joining nested
// keys with dots ("address.street") and lists with commas.
func flatten(prefix string, fields map[string]any) map[string]string {
	out := map[string]string{}
	for key, value := range fields {
		name := key
		if prefix != "" {
			name = prefix + "." + key
		}
		switch v := value.(type) {
		case map[string]any:
			for k, s := range flatten(name, v) {
				out[k] = s
			}
		case []any:
			parts := make([]string, 0, len(v))
			for _, item := range v {
				parts = append(parts, fmt.Sprintf("%v", item))
			}
			out[name] = strings.Join(parts, ",")
		case float64:
			out[name] = formatNumber(v)
		case nil:
			// skip
		default:
			out[name] = fmt.Sprintf("%v", v)
		}
	}
	return out
}

func formatNumber(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}
