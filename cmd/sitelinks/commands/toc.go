package commands

import (
	"encoding/json"
	"os"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/sitelinks/internal/foundation/errors"
	"git.home.luguber.info/inful/sitelinks/internal/frontmatter"
	"git.home.luguber.info/inful/sitelinks/internal/markdown"
	"git.home.luguber.info/inful/sitelinks/internal/toc"
)

// TOCCmd implements the 'toc' command. It does not need a configuration file.
type TOCCmd struct {
	File   string `arg:"" type:"existingfile" help:"Markdown document"`
	Min    int    `help:"Lowest heading level to include (default: front matter, then 2)"`
	Max    int    `help:"Highest heading level to include (default: front matter, then 3)"`
	Format string `short:"f" enum:"json,yaml" default:"json" help:"Output format (json|yaml)"`
}

func (c *TOCCmd) Run(g *Global) error {
	content, err := os.ReadFile(c.File)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to read document").
			WithContext("path", c.File).
			Build()
	}

	raw, body, _, err := frontmatter.Split(content)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryDocs, "invalid front matter").Build()
	}
	fm, err := frontmatter.Decode(raw)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryDocs, "invalid front matter").Build()
	}

	window := toc.DefaultWindow().
		Override(fm.TOCWindow()).
		Override(toc.Window{Min: c.Min, Max: c.Max})
	if err := window.Validate(); err != nil {
		return err
	}
	nodes := window.Apply(markdown.ExtractHeadings(body))

	if c.Format == "yaml" {
		enc := yaml.NewEncoder(g.stdout())
		enc.SetIndent(2)
		if err := enc.Encode(nodes); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(g.stdout())
	enc.SetIndent("", "  ")
	return enc.Encode(nodes)
}
