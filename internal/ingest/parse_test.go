package ingest

import (
	"strings"
	"testing"
	"time"

	"github.com/fredduggan/fleetidy/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeFieldName(t *testing.T) {
	tests := map[string]string{
		"DOT_NUMBER":      "dot_number",
		"DOT_Number":      "dot_number",
		"dot number":      "dot_number",
		"  Insp-Date  ":   "insp_date",
		"HM_Ind":          "hm_ind",
		"__weird__name__": "weird_name",
		"":                "",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeFieldName(in), "input %q", in)
	}
}

func TestParseNumbers(t *testing.T) {
	assert.Equal(t, 12, ParseInt("12", 0))
	assert.Equal(t, 12, ParseInt(` "12.9" `, 0))
	assert.Equal(t, -3, ParseInt("-3.7", 0))
	assert.Equal(t, 7, ParseInt("", 7))
	assert.Equal(t, 7, ParseInt("n/a", 7))
	assert.Equal(t, int64(1500000), ParseInt64("1.5e6", 0))

	assert.Equal(t, 42.5, ParseFloat("42.5", 0))
	assert.Equal(t, 1.0, ParseFloat("bad", 1))
	assert.Equal(t, 1.0, ParseFloat("NaN", 1))

	require.NotNil(t, ParseOptionalFloat("0"))
	assert.Equal(t, 0.0, *ParseOptionalFloat("0"))
	assert.Nil(t, ParseOptionalFloat(""))
	assert.Nil(t, ParseOptionalFloat("-"))
}

func TestParseFlag(t *testing.T) {
	for _, v := range []string{"Y", "y", "YES", "true", "1", "X", ` "Y" `} {
		assert.True(t, ParseFlag(v), v)
	}
	for _, v := range []string{"", "N", "NO", "0", "false", "2"} {
		assert.False(t, ParseFlag(v), v)
	}
}

func TestParseDate(t *testing.T) {
	want := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	for _, v := range []string{"15-MAR-24", "15-Mar-24", "20240315", "2024-03-15", "03/15/2024", `"20240315"`} {
		got, ok := ParseDate(v)
		require.True(t, ok, v)
		assert.Equal(t, want, got, v)
	}

	_, ok := ParseDate("")
	assert.False(t, ok)
	_, ok = ParseDate("sometime")
	assert.False(t, ok)
}

func TestNormalizeDOT(t *testing.T) {
	assert.Equal(t, "123", NormalizeDOT(" 123 "))
	assert.Equal(t, "123", NormalizeDOT(`"123"`))
	assert.Equal(t, "123", NormalizeDOT("123.0"))
	assert.Equal(t, "123.5", NormalizeDOT("123.5"))
}

func readRow(t *testing.T, csvText string) Row {
	t.Helper()
	reader, err := NewReader(strings.NewReader(csvText))
	require.NoError(t, err)
	row, err := reader.Next()
	require.NoError(t, err)
	return row
}

func TestReader_HeaderNormalizationAndBOM(t *testing.T) {
	row := readRow(t, "\ufeffDOT_Number,Legal Name,Empty\n 42 ,ACME,\n")

	assert.Equal(t, "42", row.Get("DOT_NUMBER"))
	assert.Equal(t, "ACME", row.Get("LEGAL_NAME"))
	assert.Equal(t, "ACME", row.Get("missing", "legal_name"), "First non-empty key wins")
	assert.Equal(t, "", row.Get("Empty"))
	assert.True(t, row.Has("empty"))
	assert.False(t, row.Has("other"))
}

func TestReader_ShortRowsAndEmptyFile(t *testing.T) {
	row := readRow(t, "A,B,C\n1\n")
	assert.Equal(t, "1", row.Get("A"))
	assert.Equal(t, "", row.Get("C"))

	_, err := NewReader(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestCarrierFromRow(t *testing.T) {
	row := readRow(t, strings.Join([]string{
		"DOT_NUMBER,LEGAL_NAME,STATUS_CODE,CLASSDEF,POWER_UNITS,OWNTRACT,MCS150_MILEAGE,TOT_MILEAGE,TELEPHONE,PHY_STATE,CRGO_GENFREIGHT,CRGO_CHEM,CRGO_CARGOOTHR,CRGO_CARGOOTHR_DESC,OWNBUS_16,AUTHORIZED_FOR_HIRE,HM_Ind",
		`77,"Acme Freight, LLC",A,AUTHORIZED FOR HIRE,3,2,,250000,555-0100,TX,X,X,X,Pipe,1,Y,N`,
	}, "\n") + "\n")

	c := CarrierFromRow(row)

	assert.Equal(t, "77", c.DOTNumber)
	assert.Equal(t, "Acme Freight, LLC", c.LegalName)
	assert.Equal(t, "A", c.StatusCode)
	assert.Equal(t, 3, c.PowerUnits)
	assert.Equal(t, 2, c.Equipment.OwnTractors)
	assert.Equal(t, int64(250000), c.AnnualMileage(), "Falls back to TOT_MILEAGE")
	assert.Equal(t, "555-0100", c.Phone)
	assert.Equal(t, "TX", c.PhysicalAddress.State)
	assert.Equal(t, []string{"General Freight", "Chemicals", "Other: Pipe"}, c.Commodities)
	assert.Equal(t, map[string]int{"OWNBUS_16": 1}, c.PassengerEquipment)
	assert.True(t, c.Authority.AuthorizedForHire)
	assert.False(t, c.HazmatIndicator)
}

func TestOverlayAuthority(t *testing.T) {
	c := domain.CarrierRecord{Authority: domain.Authority{AuthorizedForHire: true, USMail: true}}
	sms := readRow(t, "DOT_NUMBER,AUTHORIZED_FOR_HIRE,EXEMPT_FOR_HIRE\n1,N,Y\n")

	OverlayAuthority(&c, sms)

	assert.False(t, c.Authority.AuthorizedForHire)
	assert.True(t, c.Authority.ExemptForHire)
	assert.True(t, c.Authority.USMail, "Columns absent from the SMS extract are kept")
}

func TestRelatedRows(t *testing.T) {
	basic := BasicFromRow(readRow(t, "DOT_NUMBER,HOS_DRIV_MEASURE,HOS_DRIV_ALERT,CRASH_MEASURE,VEHICLE_INSP_CT\n1,72.5,Y,,9\n"))
	require.NotNil(t, basic.Percentile(domain.HoursOfService))
	assert.Equal(t, 72.5, *basic.Percentile(domain.HoursOfService))
	assert.True(t, basic.Alert(domain.HoursOfService))
	assert.Nil(t, basic.Measures[domain.CrashIndicator])
	assert.Equal(t, 9, basic.VehicleInspections)

	crash := CrashFromRow(readRow(t, "DOT_NUMBER,REPORT_DATE,FATALITIES,INJURIES,HAZMAT_RELEASED\n1,02-JAN-25,1,2,Y\n"))
	assert.Equal(t, time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), crash.ReportDate)
	assert.Equal(t, 1, crash.Fatalities)
	assert.Equal(t, 2, crash.Injuries)
	assert.True(t, crash.HazmatReleased)

	insp := InspectionFromRow(readRow(t, "DOT_NUMBER,INSP_DATE,OOS_TOTAL\n1,20250110,2\n"))
	assert.True(t, insp.OutOfService)
	assert.Equal(t, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), insp.InspectionDate)
	assert.False(t, InspectionFromRow(readRow(t, "DOT_NUMBER,INSP_DATE,OOS_TOTAL\n1,20250110,0\n")).OutOfService)

	v := ViolationFromRow(readRow(t, "DOT_Number,Insp_Date,BASIC_Desc,Severity_Weight\n1,10-JAN-25,Vehicle Maint.,7\n"))
	assert.Equal(t, "Vehicle Maint.", v.BasicDesc)
	assert.Equal(t, 7, v.SeverityWeight)
	assert.False(t, v.InspectionDate.IsZero())
}
