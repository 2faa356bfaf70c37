package commands

import (
	"github.com/spf13/cobra"
	"github.com/tencent-go/avrogen/descriptor"
	"github.com/tencent-go/avrogen/errx"
	"github.com/tencent-go/avrogen/source"
)

type docOptions struct {
	outputOptions
	classes []string
}

func registerDocCmd(parent *cobra.Command, s *state) {
	opts := &docOptions{}
	cmd := &cobra.Command{
		Use:   "doc FILE",
		Short: "Generate schemas from a YAML or JSON descriptor document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.runDoc(cmd, opts, args[0])
		},
	}
	cmd.Flags().StringArrayVarP(&opts.classes, "class", "c", nil, "Class to convert (repeatable, default all policy-accepted classes)")
	opts.bind(cmd, false)
	parent.AddCommand(cmd)
}

func (s *state) runDoc(cmd *cobra.Command, opts *docOptions, path string) error {
	doc, err := source.LoadDocument(path)
	if err != nil {
		return err
	}
	var classes []*descriptor.ClassDescriptor
	for _, name := range opts.classes {
		class, err := doc.Class(name)
		if err != nil {
			return err
		}
		classes = append(classes, class)
	}
	if len(opts.classes) == 0 {
		classes = doc.Roots(s.cfg.Policy())
	}
	if len(classes) == 0 {
		return errx.NotFound.WithMsgf("no class to convert in %s", path).Err()
	}
	return s.convertAndWrite(cmd.Context(), cmd, &opts.outputOptions, classes)
}
