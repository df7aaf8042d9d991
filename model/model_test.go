package model_test

import (
	"strings"
	"testing"

	"github.com/biocyc/go-biocyc/model"
	"github.com/stretchr/testify/require"
)

const compoundXML = `<?xml version="1.0" encoding="ISO-8859-1"?>
<ptools-xml ptools-version="19.0" xml:base="http://BioCyc.org/getxml?META:L-LACTATE">
  <metadata>
    <url>http://BioCyc.org/</url>
    <num-results>1</num-results>
  </metadata>
  <Compound ID="META:L-LACTATE" orgid="META" frameid="L-LACTATE" detail="full">
    <parent>
      <Compound resource="getxml?META:Lactate" orgid="META" frameid="Lactate"/>
    </parent>
    <common-name datatype="string">(S)-lactate</common-name>
    <synonym datatype="string">L-lactate</synonym>
    <synonym datatype="string">L(+)-lactate</synonym>
    <inchi datatype="string">InChI=1S/C3H6O3/c1-2(4)3(5)6/h2,4H,1H3,(H,5,6)/t2-/m0/s1</inchi>
    <molecular-weight datatype="float" units="daltons">89.07</molecular-weight>
    <gibbs-0 datatype="float" units="kcal/mol">-123.05</gibbs-0>
    <appears-in-right-side-of>
      <Reaction resource="getxml?META:LDH-RXN" orgid="META" frameid="LDH-RXN"/>
      <Reaction resource="getxml?META:RXN-8619" orgid="META" frameid="RXN-8619"/>
    </appears-in-right-side-of>
    <appears-in-left-side-of>
      <Reaction resource="getxml?META:LACTALDDEHYDROG-RXN" orgid="META" frameid="LACTALDDEHYDROG-RXN"/>
    </appears-in-left-side-of>
    <dblink>
      <dblink-db>CAS</dblink-db>
      <dblink-oid>79-33-4</dblink-oid>
      <dblink-URL>http://www.commonchemistry.org/ChemicalDetail.aspx?ref=79-33-4</dblink-URL>
    </dblink>
    <dblink>
      <dblink-db>CHEBI</dblink-db>
      <dblink-oid>422</dblink-oid>
    </dblink>
  </Compound>
</ptools-xml>`

const pathwayXML = `<?xml version="1.0" encoding="ISO-8859-1"?>
<ptools-xml ptools-version="19.0">
  <Pathway ID="META:ANAGLYCOLYSIS-PWY" orgid="META" frameid="ANAGLYCOLYSIS-PWY" detail="full">
    <synonym datatype="string">glycolysis III</synonym>
    <super-pathways>
      <Pathway resource="getxml?META:GLYCOLYSIS-E-D" orgid="META" frameid="GLYCOLYSIS-E-D"/>
    </super-pathways>
    <species>
      <Organism resource="getxml?META:TAX-562" orgid="META" frameid="TAX-562"/>
    </species>
    <taxonomic-range>
      <Organism resource="getxml?META:TAX-2" orgid="META" frameid="TAX-2"/>
    </taxonomic-range>
  </Pathway>
</ptools-xml>`

func TestParseCompound(t *testing.T) {
	kind, attrs, err := model.ParseEntity(strings.NewReader(compoundXML))
	require.NoError(t, err)
	require.Equal(t, model.KindCompound, kind)

	name, ok := attrs.Scalar(model.AttrCommonName)
	require.True(t, ok)
	require.Equal(t, "(S)-lactate", name)

	syns, ok := attrs.List(model.AttrSynonyms)
	require.True(t, ok)
	require.Equal(t, []string{"L-lactate", "L(+)-lactate"}, syns)

	inchi, ok := attrs.Scalar(model.AttrInChI)
	require.True(t, ok)
	require.True(t, strings.HasPrefix(inchi, "InChI=1S/C3H6O3"))

	mw, ok := attrs.Scalar(model.AttrMolecularWeight)
	require.True(t, ok)
	require.Equal(t, "89.07", mw)

	gibbs, ok := attrs.Scalar(model.AttrGibbs0)
	require.True(t, ok)
	require.Equal(t, "-123.05", gibbs)

	parents, ok := attrs.Refs(model.AttrParents)
	require.True(t, ok)
	require.Equal(t, []string{"Lactate"}, parents)

	right, ok := attrs.Refs(model.AttrReactionsRight)
	require.True(t, ok)
	require.Equal(t, []string{"LDH-RXN", "RXN-8619"}, right)

	left, ok := attrs.Refs(model.AttrReactionsLeft)
	require.True(t, ok)
	require.Equal(t, []string{"LACTALDDEHYDROG-RXN"}, left)

	// Combined list keeps source ordering: right side then left side.
	all, ok := attrs.Refs(model.AttrReactions)
	require.True(t, ok)
	require.Equal(t, []string{"LDH-RXN", "RXN-8619", "LACTALDDEHYDROG-RXN"}, all)

	links, ok := attrs.List(model.AttrDBLinks)
	require.True(t, ok)
	require.Equal(t, []string{"CAS:79-33-4", "CHEBI:422"}, links)
}

func TestParsePathway(t *testing.T) {
	kind, attrs, err := model.ParseEntity(strings.NewReader(pathwayXML))
	require.NoError(t, err)
	require.Equal(t, model.KindPathway, kind)

	super, ok := attrs.Refs(model.AttrSuperPathways)
	require.True(t, ok)
	require.Equal(t, []string{"GLYCOLYSIS-E-D"}, super)

	species, ok := attrs.Refs(model.AttrSpecies)
	require.True(t, ok)
	require.Equal(t, []string{"TAX-562"}, species)

	taxRange, ok := attrs.Refs(model.AttrTaxonomicRange)
	require.True(t, ok)
	require.Equal(t, []string{"TAX-2"}, taxRange)

	// No common name in the payload, so the last synonym stands in.
	name, ok := attrs.Scalar(model.AttrCommonName)
	require.True(t, ok)
	require.Equal(t, "glycolysis III", name)
}

func TestParseNoEntity(t *testing.T) {
	_, _, err := model.ParseEntity(strings.NewReader(
		`<ptools-xml><metadata><num-results>0</num-results></metadata></ptools-xml>`))
	require.ErrorIs(t, err, model.ErrNoEntity)

	_, _, err = model.ParseEntity(strings.NewReader(``))
	require.ErrorIs(t, err, model.ErrNoEntity)
}

func TestIdentity(t *testing.T) {
	a := model.NewIdentity("meta", "L-LACTATE")
	b := model.NewIdentity("META", "L-LACTATE")
	require.Equal(t, a, b)
	require.Equal(t, "META:L-LACTATE", a.String())

	c := model.NewIdentity("META", "l-lactate")
	require.NotEqual(t, a, c)
}

func TestSchemaLookup(t *testing.T) {
	def, ok := model.LookupAttr(model.KindCompound, model.AttrReactions)
	require.True(t, ok)
	require.Equal(t, model.AttrRefList, def.Type)

	def, ok = model.LookupAttr(model.KindReaction, model.AttrPathways)
	require.True(t, ok)
	require.Equal(t, model.AttrRefList, def.Type)

	// Base attributes apply to every kind, known or not.
	def, ok = model.LookupAttr(model.KindUnknown, model.AttrParents)
	require.True(t, ok)
	require.Equal(t, model.AttrRefList, def.Type)

	_, ok = model.LookupAttr(model.KindProtein, model.AttrPathways)
	require.False(t, ok)

	def, ok = model.LookupAttr(model.KindCompound, model.AttrMolecularWeight)
	require.True(t, ok)
	require.Equal(t, model.AttrScalar, def.Type)
	require.True(t, def.Float)
}

func TestAttributesMerge(t *testing.T) {
	a := model.Attributes{
		model.AttrCommonName: {Type: model.AttrScalar, Scalar: "old"},
	}
	b := model.Attributes{
		model.AttrCommonName: {Type: model.AttrScalar, Scalar: "new"},
		model.AttrParents:    {Type: model.AttrRefList, List: []string{"P1"}},
	}
	a.Merge(b)
	name, _ := a.Scalar(model.AttrCommonName)
	require.Equal(t, "new", name)
	parents, ok := a.Refs(model.AttrParents)
	require.True(t, ok)
	require.Equal(t, []string{"P1"}, parents)

	c := a.Clone()
	refs, _ := c.Refs(model.AttrParents)
	refs[0] = "mutated"
	parents, _ = a.Refs(model.AttrParents)
	require.Equal(t, []string{"P1"}, parents)
}

func TestDBLinks(t *testing.T) {
	db, oid := model.SplitDBLink("CAS:79-33-4")
	require.Equal(t, "CAS", db)
	require.Equal(t, "79-33-4", oid)

	u, ok := model.DBLinkURL("CAS", "79-33-4")
	require.True(t, ok)
	require.Equal(t, "http://www.commonchemistry.org/ChemicalDetail.aspx?ref=79-33-4", u)

	_, ok = model.DBLinkURL("NO-SUCH-DB", "x")
	require.False(t, ok)
}

func TestEntityURL(t *testing.T) {
	u := model.EntityURL(model.NewIdentity("META", "L-LACTATE"))
	require.Equal(t, "https://biocyc.org/META/NEW-IMAGE?object=L-LACTATE", u)
}

func TestValidDetail(t *testing.T) {
	require.True(t, model.ValidDetail(model.DetailNone))
	require.True(t, model.ValidDetail(model.DetailLow))
	require.True(t, model.ValidDetail(model.DetailFull))
	require.False(t, model.ValidDetail("verbose"))
}
