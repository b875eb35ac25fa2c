package models

type Config struct {
	MySQL   MySQL   `yaml:"mysql"`
	Sources Sources `yaml:"sources"`
}

type MySQL struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	Username string `yaml:"username"`
	Password string `yaml:"password"` // optional; prompted at run start when empty
}

// Sources holds the locations of the three raw CSV datasets. Each entry may be
// an http(s) URL or a local file path.
type Sources struct {
	Invoices   string `yaml:"invoices"`
	OrderLeads string `yaml:"order_leads"`
	SalesTeam  string `yaml:"sales_team"`
}

// Default raw dataset locations, the published CSVs the pipeline was built
// around. Overridable via config or run flags.
const (
	DefaultInvoicesURL   = "https://raw.githubusercontent.com/nlee98/ADS-507-Data-Engineering/main/Invoices.csv"
	DefaultOrderLeadsURL = "https://raw.githubusercontent.com/nlee98/ADS-507-Data-Engineering/main/OrderLeads.csv"
	DefaultSalesTeamURL  = "https://raw.githubusercontent.com/nlee98/ADS-507-Data-Engineering/main/SalesTeam.csv"
)

// ApplyDefaults fills unset fields with the standard local-server defaults.
func (c *Config) ApplyDefaults() {
	if c.MySQL.Host == "" {
		c.MySQL.Host = "localhost"
	}
	if c.MySQL.Port == 0 {
		c.MySQL.Port = 3306
	}
	if c.MySQL.Database == "" {
		c.MySQL.Database = "supermarket"
	}
	if c.Sources.Invoices == "" {
		c.Sources.Invoices = DefaultInvoicesURL
	}
	if c.Sources.OrderLeads == "" {
		c.Sources.OrderLeads = DefaultOrderLeadsURL
	}
	if c.Sources.SalesTeam == "" {
		c.Sources.SalesTeam = DefaultSalesTeamURL
	}
}
