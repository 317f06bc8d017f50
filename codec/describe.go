package codec

import (
	"fmt"
	"strings"

	"github.com/cqkv/cmdlog/model"
)

// previewLength bounds how much of a key or value a description shows
const previewLength = 250

// Describe renders a record as a header line and a body line. It only reads the
// record and never looks past the declared lengths of its fields.
func Describe(rec model.Record) string {
	var sb strings.Builder
	describeHeader(&sb, rec.Header())

	switch log := rec.(type) {
	case *model.ItemLinkLog:
		describeItemLink(&sb, log)
	case *model.ItemUnlinkLog:
		fmt.Fprintf(&sb, "[BODY]   keylen=%d | keystr=%s", log.KeyLen, preview(log.Key, int(log.KeyLen)))
	case *model.ItemArithmeticLog:
		fmt.Fprintf(&sb, "[BODY]   create=%t | flags=%d | exptime=%d | delta=%d | initial=%d | cas=%d | keylen=%d | keystr=%s",
			log.Create, log.Flags, log.ExpireTime, log.Delta, log.Initial, log.CAS,
			log.KeyLen, preview(log.Key, int(log.KeyLen)))
	case *model.ItemSetattrLog:
		fmt.Fprintf(&sb, "[BODY]   exptime=%d | ovflact=%s | mflags=%d | mcnt=%d | maxbkeyrange %s | keylen=%d | keystr=%s",
			log.ExpireTime, log.OvflAction, log.MFlags, log.MaxCount, bkeyText(log.MaxBkrLen, log.MaxBkr),
			log.KeyLen, preview(log.Key, int(log.KeyLen)))
	case *model.ListElemInsertLog:
		fmt.Fprintf(&sb, "[BODY]   index=%d | totcnt=%d | %skeylen=%d | keystr=%s | vallen=%d | valstr=%s",
			log.Index, log.TotalCount, createText(log.Create, &log.Attrs),
			log.KeyLen, preview(log.Key, int(log.KeyLen)), log.ValueLen, preview(log.Value, int(log.ValueLen)))
	case *model.ListElemDeleteLog:
		fmt.Fprintf(&sb, "[BODY]   index=%d | count=%d | drop=%t | keylen=%d | keystr=%s",
			log.Index, log.Count, log.DropIfEmpty, log.KeyLen, preview(log.Key, int(log.KeyLen)))
	case *model.SetElemInsertLog:
		fmt.Fprintf(&sb, "[BODY]   %skeylen=%d | keystr=%s | vallen=%d | valstr=%s",
			createText(log.Create, &log.Attrs),
			log.KeyLen, preview(log.Key, int(log.KeyLen)), log.ValueLen, preview(log.Value, int(log.ValueLen)))
	case *model.SetElemDeleteLog:
		fmt.Fprintf(&sb, "[BODY]   drop=%t | keylen=%d | keystr=%s | vallen=%d | valstr=%s",
			log.DropIfEmpty, log.KeyLen, preview(log.Key, int(log.KeyLen)), log.ValueLen, preview(log.Value, int(log.ValueLen)))
	case *model.MapElemInsertLog:
		fmt.Fprintf(&sb, "[BODY]   %skeylen=%d | keystr=%s | fldlen=%d | fldstr=%s | vallen=%d | valstr=%s",
			createText(log.Create, &log.Attrs),
			log.KeyLen, preview(log.Key, int(log.KeyLen)), log.FieldLen, preview(log.Field, int(log.FieldLen)),
			log.ValueLen, preview(log.Value, int(log.ValueLen)))
	case *model.MapElemDeleteLog:
		fmt.Fprintf(&sb, "[BODY]   drop=%t | keylen=%d | keystr=%s | fldlen=%d | fldstr=%s",
			log.DropIfEmpty, log.KeyLen, preview(log.Key, int(log.KeyLen)), log.FieldLen, preview(log.Field, int(log.FieldLen)))
	case *model.BtElemInsertLog:
		fmt.Fprintf(&sb, "[BODY]   %skeylen=%d | keystr=%s | bkey %s | eflag=%s | vallen=%d | valstr=%s",
			createText(log.Create, &log.Attrs),
			log.KeyLen, preview(log.Key, int(log.KeyLen)), bkeyText(log.NBkey, log.Bkey), eflagText(log.Eflag[:log.NEflag]),
			log.ValueLen, preview(log.Value, int(log.ValueLen)))
	case *model.BtElemDeleteLog:
		fmt.Fprintf(&sb, "[BODY]   drop=%t | keylen=%d | keystr=%s | bkey %s",
			log.DropIfEmpty, log.KeyLen, preview(log.Key, int(log.KeyLen)), bkeyText(log.NBkey, log.Bkey))
	case *model.BtElemArithmeticLog:
		fmt.Fprintf(&sb, "[BODY]   incr=%t | delta=%d | create=%t | initial=%d | keylen=%d | keystr=%s | bkey %s",
			log.Incr, log.Delta, log.Create, log.Initial,
			log.KeyLen, preview(log.Key, int(log.KeyLen)), bkeyText(log.NBkey, log.Bkey))
	case *model.SnapshotHeadLog:
		fmt.Fprintf(&sb, "[BODY]   version=%d | created_at=%d", log.Version, log.CreatedAt)
	case *model.SnapshotTailLog:
	}
	return sb.String()
}

func describeHeader(sb *strings.Builder, hdr *model.LogHeader) {
	fmt.Fprintf(sb, "[HEADER] body_length=%d | logtype=%s | updtype=%s\n",
		hdr.BodyLength, model.LogTypeText(hdr.LogType), model.UpdateTypeText(hdr.UpdType))
}

func describeItemLink(sb *strings.Builder, log *model.ItemLinkLog) {
	cm := &log.Common

	var metastr string
	switch p := log.Payload.(type) {
	case *model.CASPayload:
		metastr = fmt.Sprintf("cas=%d | ", p.CAS)
	case *model.CollPayload:
		maxbkrstr := " | "
		if cm.ItemType == model.ItemTypeBTree {
			maxbkrstr = " | maxbkeyrange " + bkeyText(p.MaxBkrLen, p.MaxBkr) + " | "
		}
		metastr = fmt.Sprintf("ovflact=%s | mflags=%d | mcnt=%d%s", p.OvflAction, p.MFlags, p.MCount, maxbkrstr)
	}

	fmt.Fprintf(sb, "[BODY]   ittype=%s | flags=%d | exptime=%d | %skeylen=%d | keystr=%s | vallen=%d | valstr=%s",
		model.ItemTypeText(cm.ItemType), cm.Flags, cm.ExpireTime, metastr,
		cm.KeyLen, preview(log.Key, int(cm.KeyLen)), cm.ValueLen, preview(log.Value, int(cm.ValueLen)))
}

// preview shows at most previewLength bytes of the first n bytes of b
func preview(b []byte, n int) string {
	return string(b[:min(n, previewLength)])
}

// bkeyText renders a b-tree key or range: decimal for the 8 byte numeric form,
// hex for byte arrays
func bkeyText(nbkey uint8, b []byte) string {
	switch nbkey {
	case model.BkeyNull:
		return "len=BKEY_NULL val=0"
	case model.BkeyUint64:
		return fmt.Sprintf("len=%d val=%d", nbkey, le.Uint64(b[:8]))
	}
	return fmt.Sprintf("len=%d val=0x%X", nbkey, b[:nbkey])
}

func eflagText(eflag []byte) string {
	if len(eflag) == 0 {
		return "none"
	}
	return fmt.Sprintf("0x%X", eflag)
}

func createText(create bool, attrs *model.CollAttrs) string {
	if !create {
		return "create=false | "
	}
	return fmt.Sprintf("create=true | flags=%d | exptime=%d | maxcount=%d | ovflact=%s | mflags=%d | ",
		attrs.Flags, attrs.ExpireTime, attrs.MaxCount, attrs.OvflAction, attrs.MFlags)
}
