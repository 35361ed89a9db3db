package consts

import (
	"fmt"
	"io/ioutil"

	"gopkg.in/yaml.v2"
)

// CountryAliases maps source-specific country spellings to the spelling used
// by the demographic table.
var CountryAliases map[string]string

func init() {
	CountryAliases = make(map[string]string)

	CountryAliases["UK"] = "United Kingdom"
	CountryAliases["US"] = "United States"
	CountryAliases["Mainland China"] = "China"
	CountryAliases["Czech Republic"] = "Czechia"
	CountryAliases["Korea, South"] = "South Korea"
	CountryAliases["Taiwan*"] = "Taiwan"
	CountryAliases["Burma"] = "Myanmar"
	CountryAliases["Congo (Kinshasa)"] = "Democratic Republic of the Congo"
	CountryAliases["Congo (Brazzaville)"] = "Republic of the Congo"
	CountryAliases["Cabo Verde"] = "Cape Verde"
	CountryAliases["Holy See"] = "Vatican"
	CountryAliases["North Macedonia"] = "Macedonia"
}

// LoadCountryAliases merges a yaml file of `source: target` pairs into
// CountryAliases. Entries in the file win over the built-in ones.
func LoadCountryAliases(file string) (int, error) {
	data, err := ioutil.ReadFile(file)
	if nil != err {
		return 0, fmt.Errorf("read country aliases: %w", err)
	}

	aliases := make(map[string]string)
	if err := yaml.Unmarshal(data, &aliases); nil != err {
		return 0, fmt.Errorf("decode country aliases %s: %w", file, err)
	}

	for from, to := range aliases {
		if from == "" || to == "" {
			return 0, fmt.Errorf("empty country alias %q -> %q", from, to)
		}
	}

	for from, to := range aliases {
		CountryAliases[from] = to
	}
	return len(aliases), nil
}
