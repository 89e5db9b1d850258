package config

// Restorefile is the on-disk shape of restore.yaml.
type Restorefile struct {
	Root           string              `yaml:"root"`
	Solution       string              `yaml:"solution"`
	Nominations    []string            `yaml:"nominations"`
	PackagesConfig []PackagesConfigDTO `yaml:"packagesConfig"`
	Settings       SettingsDTO         `yaml:"settings"`
	Daemon         DaemonDTO           `yaml:"daemon"`
}

// PackagesConfigDTO lists a packages.config style project.
type PackagesConfigDTO struct {
	Project  string `yaml:"project"`
	Packages string `yaml:"packages"`
}

// SettingsDTO holds the user restore settings. Unset fields keep their defaults.
type SettingsDTO struct {
	Consent                *bool    `yaml:"consent"`
	Automatic              *bool    `yaml:"automatic"`
	MaxDegreeOfConcurrency int      `yaml:"maxDegreeOfConcurrency"`
	DisableParallel        bool     `yaml:"disableParallel"`
	GlobalPackagesFolder   string   `yaml:"globalPackagesFolder"`
	Feeds                  []string `yaml:"feeds"`
	Verbosity              string   `yaml:"verbosity"`
	MachineLock            bool     `yaml:"machineLock"`
}

// DaemonDTO configures the long-running restore host.
type DaemonDTO struct {
	IdleTimeout    string `yaml:"idleTimeout"`
	MetricsAddress string `yaml:"metricsAddress"`
}

// packagesFile is the XML shape of a packages.config file.
type packagesFile struct {
	Packages []packageEntry `xml:"package"`
}

type packageEntry struct {
	ID      string `xml:"id,attr"`
	Version string `xml:"version,attr"`
}
