package mocks

import "github.com/user/autovlog/pkg/ports"

// TemplateLoader is a mock implementation of ports.TemplateLoader.
type TemplateLoader struct {
	LoadGlobalFunc    func() (ports.GlobalConfigDTO, error)
	LoadTemplateFunc  func(name string) (ports.TemplateDTO, error)
	ListTemplatesFunc func() ([]ports.TemplateSummary, error)
}

func (m *TemplateLoader) LoadGlobal() (ports.GlobalConfigDTO, error) {
	if m.LoadGlobalFunc != nil {
		return m.LoadGlobalFunc()
	}
	return ports.GlobalConfigDTO{}, nil
}

func (m *TemplateLoader) LoadTemplate(name string) (ports.TemplateDTO, error) {
	if m.LoadTemplateFunc != nil {
		return m.LoadTemplateFunc(name)
	}
	return ports.TemplateDTO{Name: name}, nil
}

func (m *TemplateLoader) ListTemplates() ([]ports.TemplateSummary, error) {
	if m.ListTemplatesFunc != nil {
		return m.ListTemplatesFunc()
	}
	return nil, nil
}

var _ ports.TemplateLoader = (*TemplateLoader)(nil)
