package descriptors

import (
	"strconv"

	"github.com/arthur-debert/toolbars/pkg/errors"
	"github.com/arthur-debert/toolbars/pkg/logging"
	"github.com/beevik/etree"
)

func loadXMLManifest(path string) (*Manifest, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestLoad, "failed to load manifest %s", path).
			WithDetail("path", path)
	}

	root := doc.Root()
	if root == nil {
		return nil, errors.Newf(errors.ErrManifestParse, "%s: empty document", path).
			WithDetail("path", path)
	}

	m := &Manifest{Path: path}
	pos := 0
	addItem := func(el *etree.Element, toolbarKey string) error {
		it := manifestItem{
			ID:      el.SelectAttrValue("id", ""),
			Toolbar: el.SelectAttrValue("toolbar", toolbarKey),
			Align:   el.SelectAttrValue("align", ""),
		}
		if v := el.SelectAttrValue("index", ""); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return errors.Newf(errors.ErrManifestParse, "%s: item #%d: invalid index %q", path, pos+1, v).
					WithDetail("path", path)
			}
			it.Index = n
		}
		if v := el.SelectAttrValue("fallback", ""); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return errors.Newf(errors.ErrManifestParse, "%s: item #%d: invalid fallback %q", path, pos+1, v).
					WithDetail("path", path)
			}
			it.Fallback = b
		}
		d, err := newDescriptor(path, pos, it)
		if err != nil {
			return err
		}
		pos++
		m.Items = append(m.Items, d)
		return nil
	}

	for i, tbEl := range root.SelectElements("toolbar") {
		decl, err := newToolbar(path, i, tbEl.SelectAttrValue("key", ""), tbEl.SelectAttrValue("title", ""))
		if err != nil {
			return nil, err
		}
		m.Toolbars = append(m.Toolbars, decl)

		for _, itEl := range tbEl.SelectElements("item") {
			if err := addItem(itEl, string(decl.Key)); err != nil {
				return nil, err
			}
		}
	}

	// items may also sit directly under the root with a toolbar attribute
	for _, itEl := range root.SelectElements("item") {
		if err := addItem(itEl, ""); err != nil {
			return nil, err
		}
	}

	logger := logging.GetLogger("descriptors")
	logger.Debug().
		Str("path", path).
		Int("toolbars", len(m.Toolbars)).
		Int("items", len(m.Items)).
		Msg("Manifest loaded")
	return m, nil
}
