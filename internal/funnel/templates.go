// Package funnel resolves funnel types to their launch-checklist templates.
package funnel

import (
	"github.com/google/uuid"

	"trafficpro/internal/domain"
)

// Template is a fixed ordered task list plus a display label for one funnel
// type.
type Template struct {
	Label string
	Tasks []string
}

var templates = map[domain.FunnelType]Template{
	domain.FunnelDirect: {
		Label: "Tráfego Direto",
		Tasks: []string{"Criar Anúncios", "Otimizar Página de Vendas", "Configurar Pixel", "Teste de Checkout"},
	},
	domain.FunnelWhatsApp: {
		Label: "Meta + WhatsApp",
		Tasks: []string{"Criar Criativos", "Configurar Link WhatsApp", "Treinar Scripts de Vendas", "Instalar API de Conversão"},
	},
	domain.FunnelLeadGen: {
		Label: "Geração de Leads",
		Tasks: []string{"Landing Page", "Configurar CRM", "E-mail de Boas-vindas", "Lead Magnet Setup"},
	},
	domain.FunnelEcommerce: {
		Label: "E-commerce Pro",
		Tasks: []string{"Feed de Produtos", "Campanha de Catálogo", "Remarketing Dinâmico", "Upsell Strategy"},
	},
	domain.FunnelInfoproduct: {
		Label: "Modelo MED / Info",
		Tasks: []string{"Quiz Interativo", "VSL Setup", "E-mail Sequence", "Member Area Check"},
	},
}

// Resolve returns the template for the given funnel type. Unknown types fall
// back to the default funnel so callers always get a usable template.
func Resolve(f domain.FunnelType) Template {
	if t, ok := templates[f]; ok {
		return t
	}
	return templates[domain.DefaultFunnel]
}

// Checklist materializes fresh, incomplete checklist items from the template
// for f. Every call generates new item ids; selecting a template replaces any
// previously generated checklist wholesale, it never merges.
func Checklist(f domain.FunnelType) []domain.ChecklistItem {
	t := Resolve(f)
	items := make([]domain.ChecklistItem, len(t.Tasks))
	for i, task := range t.Tasks {
		items[i] = domain.ChecklistItem{
			ID:    uuid.NewString(),
			Label: task,
		}
	}
	return items
}
