package consts

type Template string

const (
	TemplatePortfolio     Template = "portfolio"
	TemplateBusiness      Template = "business"
	TemplatePersonal      Template = "personal"
	TemplateLocalBusiness Template = "local-business"
)

func IsValidTemplate(t Template) bool {
	switch t {
	case TemplatePortfolio, TemplateBusiness, TemplatePersonal, TemplateLocalBusiness:
		return true
	}
	return false
}

type DomainStatus string

const (
	DomainStatusNotAdded DomainStatus = "not_added"
	DomainStatusPending  DomainStatus = "pending"
	DomainStatusValid    DomainStatus = "valid"
	DomainStatusInvalid  DomainStatus = "invalid"
)

type DNSStatus string

const (
	DNSStatusConfigured    DNSStatus = "configured"
	DNSStatusNotConfigured DNSStatus = "dns_not_configured"
	DNSStatusError         DNSStatus = "dns_error"
	DNSStatusNotFound      DNSStatus = "not_found"
)
