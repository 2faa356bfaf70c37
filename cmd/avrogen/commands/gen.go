package commands

import (
	"github.com/spf13/cobra"
	"github.com/tencent-go/avrogen/descriptor"
	"github.com/tencent-go/avrogen/errx"
	"github.com/tencent-go/avrogen/source"
)

type genOptions struct {
	outputOptions
	dir    string
	types  []string
	all    bool
	suffix string
}

func registerGenCmd(parent *cobra.Command, s *state) {
	opts := &genOptions{}
	cmd := &cobra.Command{
		Use:   "gen [packages...]",
		Short: "Generate schemas for the structs of Go packages",
		Example: `  # Every *Dto struct of the current package
  avrogen gen

  # Selected types, printed
  avrogen gen ./orders --type OrderDto --type LineDto --stdout

  # Every exported struct, archived and stored in redis
  avrogen gen ./... --all --zip schemas.zip --redis`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.runGen(cmd, opts, args)
		},
	}
	cmd.Flags().StringVar(&opts.dir, "dir", ".", "Directory package patterns are resolved from")
	cmd.Flags().StringArrayVarP(&opts.types, "type", "t", nil, "Type to convert, by simple or qualified name (repeatable)")
	cmd.Flags().BoolVarP(&opts.all, "all", "a", false, "Convert every exported struct")
	cmd.Flags().StringVar(&opts.suffix, "suffix", "", "Name suffix of the structs to convert (default $AVROGEN_SUFFIX)")
	opts.bind(cmd, true)
	parent.AddCommand(cmd)
}

func (s *state) runGen(cmd *cobra.Command, opts *genOptions, args []string) error {
	if opts.all && len(opts.types) > 0 {
		return errx.Validation.WithMsg("--all and --type are mutually exclusive").Err()
	}
	if len(args) == 0 {
		args = []string{"."}
	}
	ctx := cmd.Context()
	pkgs, err := source.LoadPackages(ctx, opts.dir, args...)
	if err != nil {
		return err
	}

	var classes []*descriptor.ClassDescriptor
	switch {
	case len(opts.types) > 0:
		for _, name := range opts.types {
			class, err := pkgs.Class(name)
			if err != nil {
				return err
			}
			classes = append(classes, class)
		}
	case opts.all:
		classes = pkgs.Classes(source.Policy{})
	default:
		policy := s.cfg.Policy()
		if cmd.Flags().Changed("suffix") {
			policy.Suffix = opts.suffix
		}
		classes = pkgs.Classes(policy)
	}
	if len(classes) == 0 {
		return errx.NotFound.WithMsgf("no struct to convert in %v", args).Err()
	}
	return s.convertAndWrite(ctx, cmd, &opts.outputOptions, classes)
}
