package workflow

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/slchris/gpypi/internal/config"
)

const metadataHeader = xml.Header +
	`<!DOCTYPE pkgmetadata SYSTEM "http://www.gentoo.org/dtd/metadata.dtd">` + "\n"

type pkgMetadata struct {
	XMLName         xml.Name     `xml:"pkgmetadata"`
	Herds           []string     `xml:"herd"`
	Maintainers     []maintainer `xml:"maintainer"`
	LongDescription string       `xml:"longdescription,omitempty"`
}

type maintainer struct {
	Email       string `xml:"email"`
	Name        string `xml:"name,omitempty"`
	Description string `xml:"description,omitempty"`
}

// Metadata writes metadata.xml into the ebuild directory: herds,
// maintainers and the long description. An existing file is left alone.
func (r *Runner) Metadata(longDescription string) error {
	disabled, err := r.mgr.GetBool(config.OptMetadataDisable)
	if err != nil {
		return err
	}
	if disabled {
		r.log.Warn("Skipping metadata.xml ...")
		return nil
	}

	metadata := pkgMetadata{LongDescription: longDescription}

	herd, err := r.mgr.GetString(config.OptMetadataHerd)
	if err != nil {
		return err
	}
	if herd != "" {
		metadata.Herds = splitList(herd)
	} else {
		metadata.Herds = []string{"no-herd"}
	}

	maintainers, err := r.maintainers()
	if err != nil {
		return err
	}
	metadata.Maintainers = maintainers

	path := filepath.Join(r.dir, "metadata.xml")
	if _, err := os.Stat(path); err == nil {
		r.log.Warn("metadata.xml already exists.")
		return nil
	}

	body, err := xml.MarshalIndent(metadata, "", "\t")
	if err != nil {
		return fmt.Errorf("failed to marshal metadata.xml: %w", err)
	}
	if err := os.WriteFile(path, []byte(metadataHeader+string(body)+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write metadata.xml: %w", err)
	}

	r.log.Info("Added metadata.xml file")
	return nil
}

// maintainers assembles the maintainer list from the comma-separated
// name/email/description options. The identity can alternatively come
// from the ECHANGELOG_USER variable, "Name <email>" formatted.
func (r *Runner) maintainers() ([]maintainer, error) {
	name, err := r.mgr.GetString(config.OptMetadataMaintainerName)
	if err != nil {
		return nil, err
	}
	email, err := r.mgr.GetString(config.OptMetadataMaintainerEmail)
	if err != nil {
		return nil, err
	}
	desc, err := r.mgr.GetString(config.OptMetadataMaintainerDesc)
	if err != nil {
		return nil, err
	}

	useEchangelog, err := r.mgr.GetBool(config.OptMetadataUseEchangelogUser)
	if err != nil {
		return nil, err
	}
	if useEchangelog {
		if n, e, ok := parseEchangelogUser(os.Getenv("ECHANGELOG_USER")); ok {
			name, email = n, e
		}
	}

	if email == "" {
		return nil, nil
	}

	emails := splitList(email)
	names := splitList(name)
	descs := splitList(desc)

	maintainers := make([]maintainer, 0, len(emails))
	for i, addr := range emails {
		m := maintainer{Email: addr}
		if i < len(names) {
			m.Name = names[i]
		}
		if i < len(descs) {
			m.Description = descs[i]
		}
		maintainers = append(maintainers, m)
	}
	return maintainers, nil
}

// parseEchangelogUser splits "Name <email>" into its parts.
func parseEchangelogUser(value string) (name, email string, ok bool) {
	start := strings.Index(value, "<")
	end := strings.Index(value, ">")
	if start < 0 || end < start {
		return "", "", false
	}
	return strings.TrimSpace(value[:start]), strings.TrimSpace(value[start+1 : end]), true
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
