package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newCastCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cast TYPE TEXT...",
		Short: "Cast PostgreSQL text values to Go values",
		Long: `Cast each TEXT as a value of the database type TYPE and print the result.

Array types are given by their internal name, e.g. _int4. Composite types need --database.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := sessionFrom(cmd)
			if err != nil {
				return err
			}

			for _, text := range args[1:] {
				v, err := s.types.Typecast(cmd.Context(), text, args[0])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), formatValue(v))
			}
			return nil
		},
	}
}

func newAdaptCommand() *cobra.Command {
	var typ string
	var inline bool

	cmd := &cobra.Command{
		Use:   "adapt VALUE...",
		Short: "Adapt Go values given as JSON to query parameters",
		Long: `Adapt each VALUE and print the text that would be sent to the server.

Values are JSON: numbers, strings, booleans, null, arrays and objects (sent as json).
Arguments that are not valid JSON are taken as strings.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := sessionFrom(cmd)
			if err != nil {
				return err
			}

			for _, arg := range args {
				v, err := parseValue(arg)
				if err != nil {
					return err
				}

				var out string
				if inline {
					out, err = s.adapter.AdaptInline(cmd.Context(), v, false)
				} else {
					var adapted any
					adapted, err = s.adapter.Adapt(cmd.Context(), v, typ)
					out = formatValue(adapted)
				}
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), out)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&typ, "type", "", "database or simple type of the values (guessed if empty)")
	cmd.Flags().BoolVar(&inline, "inline", false, "print SQL literals instead of parameter values")
	return cmd
}

func newFormatCommand() *cobra.Command {
	var named string
	var types string
	var inline bool

	cmd := &cobra.Command{
		Use:   "format QUERY [VALUE...]",
		Short: "Format a query with %s or %(name)s placeholders",
		Long: `Replace the placeholders of QUERY with parameter references or, with --inline, with SQL literals.

Positional values are given as arguments, named values as a JSON object with --named.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := sessionFrom(cmd)
			if err != nil {
				return err
			}

			var values any
			var typeSpec any
			if named != "" {
				if len(args) > 1 {
					return fmt.Errorf("positional values cannot be combined with --named")
				}
				if values, err = parseNamedValues(named); err != nil {
					return err
				}
			} else {
				list := make([]any, 0, len(args)-1)
				for _, arg := range args[1:] {
					v, err := parseValue(arg)
					if err != nil {
						return err
					}
					list = append(list, v)
				}
				values = list
				if types != "" {
					typeSpec = types
				}
			}

			sql, params, err := s.adapter.FormatQuery(cmd.Context(), args[0], values, typeSpec, inline)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(out, sql)
			for i, v := range params.Values() {
				_, _ = fmt.Fprintf(out, "$%d = %s\n", i+1, formatValue(v))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&named, "named", "", "JSON object with the values of named placeholders")
	cmd.Flags().StringVar(&types, "types", "", "space separated types of the positional values")
	cmd.Flags().BoolVar(&inline, "inline", false, "inline the values as SQL literals")
	return cmd
}

func newQueryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "query QUERY [VALUE...]",
		Short: "Run a query and print the cast result",
		Long:  `Run QUERY with %s placeholders replaced by the adapted VALUEs and print every row. Needs --database.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := sessionFrom(cmd)
			if err != nil {
				return err
			}
			if s.pgx == nil {
				return errOffline
			}

			values := make([]any, 0, len(args)-1)
			for _, arg := range args[1:] {
				v, err := parseValue(arg)
				if err != nil {
					return err
				}
				values = append(values, v)
			}

			sql, params, err := s.adapter.FormatQuery(cmd.Context(), args[0], values, nil, false)
			if err != nil {
				return err
			}

			names, rows, err := s.pgx.Select(cmd.Context(), s.types, sql, params.Values()...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(out, strings.Join(names, "\t"))
			for _, row := range rows {
				cols := make([]string, len(row))
				for i, v := range row {
					cols[i] = formatValue(v)
				}
				_, _ = fmt.Fprintln(out, strings.Join(cols, "\t"))
			}
			return nil
		},
	}
}
