package classifier

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// categoriesFile is the YAML document shape for custom category tables:
//
//	categories:
//	  - name: vpn_cert
//	    description: VPN certificate expired or invalid
//	    keywords: [vpn, certificate]
//	    patterns: ['cert.*expired']
//	    priority: high
//	    auto_resolvable: false
type categoriesFile struct {
	Categories []Category `yaml:"categories"`
}

// LoadCategoriesFile reads custom category definitions from a YAML file.
// Every entry is validated; the slice is returned in file order.
func LoadCategoriesFile(path string) ([]Category, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read categories file: %w", err)
	}

	var doc categoriesFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse categories file %s: %w", path, err)
	}
	if len(doc.Categories) == 0 {
		return nil, fmt.Errorf("categories file %s defines no categories", path)
	}

	for _, c := range doc.Categories {
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("categories file %s: %w", path, err)
		}
	}
	return doc.Categories, nil
}
