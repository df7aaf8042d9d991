package model

import "fmt"

// URL templates for databases commonly referenced by dblink attributes.
var dblinkURLs = map[string]string{
	"BIOPATH":          "http://www.molecular-networks.com/biopath3/biopath/mols/%s",
	"CAS":              "http://www.commonchemistry.org/ChemicalDetail.aspx?ref=%s",
	"CHEBI":            "http://www.ebi.ac.uk/chebi/searchId.do?chebiId=CHEBI:%s",
	"CHEMSPIDER":       "http://www.chemspider.com/%s",
	"HMDB":             "http://www.hmdb.ca/compounds/%s",
	"KEGG":             "http://www.genome.ad.jp/dbget-bin/www_bget?%s",
	"KNAPSACK":         "http://kanaya.naist.jp/knapsack_jsp/information.jsp?sname=C_ID&word=%s",
	"LIGAND-CPD":       "http://www.genome.ad.jp/dbget-bin/www_bget?%s",
	"NCBI-TAXONOMY-DB": "http://www.ncbi.nlm.nih.gov/Taxonomy/Browser/wwwtax.cgi?mode=Info&id=%s",
	"PUBCHEM":          "http://pubchem.ncbi.nlm.nih.gov/summary/summary.cgi?cid=%s",
	"UNIPROT":          "http://www.uniprot.org/uniprot/%s",
}

// DBLinkURL returns the web URL for an external database record, if the
// database is known.
func DBLinkURL(db, oid string) (string, bool) {
	tmpl, ok := dblinkURLs[db]
	if !ok {
		return "", false
	}
	return fmt.Sprintf(tmpl, oid), true
}

// EntityURL returns the human-browsable web page for an entity.
func EntityURL(ident Identity) string {
	return fmt.Sprintf("https://biocyc.org/%s/NEW-IMAGE?object=%s", ident.OrgID, ident.ID)
}
