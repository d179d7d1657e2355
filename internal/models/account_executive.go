package models

// AccountExecutive менеджер, от имени которого отправляется предложение.
type AccountExecutive struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// DefaultAccountExecutives состав команды для пустого хранилища.
func DefaultAccountExecutives() []AccountExecutive {
	return []AccountExecutive{
		{ID: "ae_edgar", Name: "Edgar Espinoza", Email: "edgar@taxdome.com"},
		{ID: "ae_1", Name: "Niko Witt", Email: "niko@taxdome.com"},
		{ID: "ae_2", Name: "Troy Stell", Email: "tstell@taxdome.com"},
		{ID: "ae_3", Name: "Eric Chen", Email: "echen@taxdome.com"},
		{ID: "ae_4", Name: "Korey Curtis", Email: "kcurtis@taxdome.com"},
		{ID: "ae_5", Name: "Denise Stewart", Email: "dstewart@taxdome.com"},
		{ID: "ae_6", Name: "Erika Sanchez", Email: "eramirez@taxdome.com"},
		{ID: "ae_7", Name: "Roberto Soto", Email: "rsoto@taxdome.com"},
		{ID: "ae_8", Name: "Dominique Barte", Email: "dbarte@taxdome.com"},
		{ID: "ae_9", Name: "Rushabh Kapadia", Email: "rkapadia@taxdome.com"},
		{ID: "ae_10", Name: "Gabriel Sarmiento", Email: "gmacias@taxdome.com"},
	}
}
